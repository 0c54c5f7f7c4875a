// Package config provides configuration management for the dev server.
//
// It uses Viper to read environment variables, optionally seeded from a .env
// file next to the working directory. Defaults come from the `default` struct
// tags of each section, so every key is known to Viper even when unset.
//
// # Configuration Structure
//
//   - Server: host, port (8000), serving root, directory listing
//   - Media: entry page, playlist, songs directory, audio directory and extensions
//   - Storage: S3/MinIO credentials, bucket and prefix for `publish`
//   - Log: logging level and format
//
// Nested keys map to upper-case environment variables joined by underscores,
// e.g. server.port -> SERVER_PORT, media.audio_dir -> MEDIA_AUDIO_DIR.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
