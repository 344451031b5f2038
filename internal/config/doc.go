// Package config provides centralized configuration for the converter
// pipeline: dataset locations, the export directory, logging and run
// behavior.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources, in order of
// precedence:
//
//	1. H2RES_* environment variables (highest priority)
//	2. Legacy environment names (DRIVE_PREFIX, CLUSTERS_SUFFIX,
//	   H2RES_EXPORT_FOLDER)
//	3. Configuration file (YAML)
//	4. Built-in defaults (lowest priority)
//
// A .env file in the working directory is loaded into the environment
// first, so both naming schemes work from it.
//
// # Environment Variables
//
// All first-class environment variables follow the H2RES_* pattern:
//
//	H2RES_SOURCE_RESOURCE_DIR=/data/pypsa-eur/resources
//	H2RES_SOURCE_CLUSTERS=128
//	H2RES_EXPORT_DIR=/data/h2res
//	H2RES_LOGGING_LEVEL=info
//	H2RES_RUN_CONCURRENCY=4
//
// # Dataset Paths
//
// Resource file names are parametrized by the cluster-count suffix;
// the path helpers build them in one place:
//
//	cfg.CopProfilesPath("2030")
//	// <resource_dir>/cop_profiles_base_s_128_2030.nc
//
// # Validation
//
// Configuration is validated at load time: required directories must
// be set, the logging mode must be a known one, and concurrency must
// be positive.
package config
