// Package utils holds the ambient helpers shared by the CLI and the version commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, dotenv files and
// environment variables through Viper. LoggerFactory builds zap loggers and resolves the
// automatic log format from the terminal state of standard error.
package utils
