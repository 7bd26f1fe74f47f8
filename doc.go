// Package goliath generates organic motion trajectories for the Goliath
// robot arm and plays them back on real hardware.
//
// Sparse keyframes (named joint poses at specific frames) are expanded into a
// dense per-frame trajectory: cosine-eased interpolation between keyframes,
// per-joint sinusoidal oscillation for a non-robotic look, oscillation
// suppression around keyframes so precision moves land exactly, and a final
// smoothing pass.
//
// # Installation
//
//	go install github.com/goliath-arm/goliath/cmd/goliath@latest
//
// # Usage
//
// Generate a trajectory from a scenario file (or the built-in pick-and-place
// demo) and preview the curves in the terminal:
//
//	goliath generate --csv demo.csv
//	goliath preview -i demo.csv
//
// Then stream it to the arm:
//
//	goliath setup
//	goliath play --loop -i demo.csv
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/goliath: CLI with generate, preview, play and setup commands
//   - pkg/animation: the keyframe animator core
//   - pkg/scenario: YAML scenario files (keyframes + oscillation overrides)
//   - pkg/export: CSV and JSON trajectory tables
//   - pkg/rig: import of euler-angle exports from a 3D animation tool
//   - pkg/player: timed row-by-row trajectory playback
//   - pkg/robot: arm control, calibration, and configuration
package goliath
