// Package axpert drives one protocol session against an Axpert-family
// solar inverter over its HID or serial interface.
//
// A session is created with Open, which acquires the device channel and
// applies any Options:
//
//	inv, err := axpert.Open("/dev/hidAxpert")
//	if err != nil {
//	    return err
//	}
//	defer inv.Close()
//
//	res, err := inv.Query(ctx, "QPIGS", false)
//
// Queries return an ordered entities.Result mapping entity keys to
// typed values. Commands return the device's accept/reject outcome:
//
//	ok, err := inv.Command(ctx, "POP", []string{"2"})
//
// Each request runs under a deadline covering the full transmit and
// read cycle. On timeout the channel is kept open and the session stays
// usable; on any other I/O failure the channel is closed and further
// requests return DeviceUnavailableError until the caller reopens.
// Response validation failures (bad checksum, missing start marker,
// missing terminator) surface as the typed errors from the protocol
// package and also leave the session usable.
package axpert
