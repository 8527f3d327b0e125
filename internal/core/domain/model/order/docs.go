// Package order provides the tracking projection of a delivery order and the
// status state machine that guards it.
//
// The package includes:
//   - Order: the small read/write view of a durable order record (status,
//     status timestamp, courier location, route end points)
//   - Status: the ten-state lifecycle with four terminal states
//
// Key business rules:
//   - Orders start as placed
//   - Any non-terminal status may move to any recognized status
//   - delivered, cancelled, failed and refunded close the order for good
//   - The courier location is last-write-wins and only the latest value is kept
package order
