// Package config loads runtime configuration for the uploader CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. JSON, or YAML when the
//     name ends in .yaml/.yml.
//  3. Environment: UPLOADER_* variables, with a .env file in the working
//     directory loaded first when present.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the file API
//	-d string   local SQLite database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	api_base_url: http://localhost:5000/api
//	database_path: uploader.db
//	request_timeout: 15s
//	log_level: debug
//	location: Europe/Riga
//	s3_region: us-east-1
//	s3_endpoint: http://127.0.0.1:9000
package config
