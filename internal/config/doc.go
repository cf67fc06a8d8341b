// Package config resolves the settings of a sync run from command line flags
// and SYNC_PRE_COMMIT_WITH_UV_* environment variables bound through viper.
package config
