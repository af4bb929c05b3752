// Package mqttpub publishes inverter query results to an MQTT broker.
//
// Each query publishes one JSON document to <prefix>/<query-name>, with
// the result's fields flattened to a single key level. Connection
// parameters come from Options; the zero value of QoS and Retain gives
// fire-and-forget, non-retained delivery.
package mqttpub
