// Package preflight provides readiness checks for the directories filesort
// touches.
//
// These checks run in two contexts:
//   - The organizer calls ValidateDirectory before any file is moved. A
//     failure ends the run with nothing modified.
//   - The CLI and daemon use CheckDirectory to report directory health and to
//     vet paths supplied by the picker or the validate endpoint.
package preflight
