// Package scenario turns a scenario configuration into simulation objects:
// the demand curve, the technologies, the assets and their dispatch groups.
package scenario
