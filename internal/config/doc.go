// Package config provides configuration loading, merging, and validation
// facilities for the homefront client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetClientConfig], which merges all sources,
// applies defaults, and validates the result.
//
// Note that the backend base URL resolved here is only the build-time
// fallback; the deployed backend URL may additionally be overridden at
// runtime by the resolver package.
package config
