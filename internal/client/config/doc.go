// Package config loads runtime configuration for the projectdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. JSON and YAML are
//     both accepted; the format follows the file extension.
//  3. Environment variables with the PROJECTDESK_ prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend (e.g. http://127.0.0.1:8000)
//	-d string   path of the local session database
//	-i int      online status check interval (seconds)
//	-t string   request timeout (Go duration, "0" disables)
//	-l string   log level: debug, info, warn, error
//
// File keys / environment names
//
//	server_url             PROJECTDESK_SERVER_URL
//	database_path          PROJECTDESK_DATABASE_PATH
//	request_timeout        PROJECTDESK_REQUEST_TIMEOUT      ("5s")
//	online_check_interval  PROJECTDESK_ONLINE_CHECK_INTERVAL ("5s")
//	log_level              PROJECTDESK_LOG_LEVEL
//	log_format             PROJECTDESK_LOG_FORMAT           (text|json|console)
package config
