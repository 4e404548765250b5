// Package config provides configuration structures and utilities for
// schoolscan. It defines the column names used by the analysis, the web
// fetch settings and the report output preferences, and loads them from an
// optional YAML file.
package config
