// Package telemetry defines the records streamed by the glove firmware.
package telemetry

// The firmware prints one line per sample over UART:
//
//	AX,AY,AZ,GX,GY,GZ,Motion
//
// Values are plain text, there is no escaping and no checksum. Lines
// carrying fewer than FieldCount fields (boot banners, scan reports) are
// not telemetry and are dropped by the receiver.
//
// The gesture firmware streams fixed size binary frames instead, see
// Frame. Integers are little-endian:
//
//	[0xAA55][version][ts_ms u32][roll0,pitch0 ... roll4,pitch4 int16][crc16]
//
// Angles are in centidegrees. The CRC is CRC-16/CCITT-FALSE over the
// bytes from version through the last angle.
