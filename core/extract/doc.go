// Package extract reduces a stream of vehicle battery snapshots to one
// low-battery marker per vehicle.
//
// The reduction keeps the first snapshot of each vehicle whose battery ratio
// is at or below the threshold. Snapshots without battery info or with
// missing fields never mark a vehicle as seen, so a later valid snapshot of
// the same vehicle can still produce its marker.
package extract
