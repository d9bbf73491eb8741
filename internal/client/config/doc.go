// Package config loads runtime configuration for the taskadmin CLI.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment: TASKADMIN_BACKEND_URL and TASKADMIN_DB.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-d string   path of the local sqlite database
//	-p int      rows per page in list views
//
// # File schema
//
//	backend_url: http://127.0.0.1:8000
//	database_path: taskadmin.db
//	page_size: 10
//	log_level: debug
//	export:
//	  bucket: taskadmin
//	  region: us-east-1
//	  endpoint: http://127.0.0.1:9000
//	  access_key: minioadmin
//	  secret_key: minioadmin
//
// The JSON form uses the same keys.
package config
