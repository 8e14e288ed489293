package telemetry

import (
	"github.com/golang/protobuf/proto"
)

// Sample is the serializable form of a Record published to subscribers.
type Sample struct {
	Session   string   `protobuf:"bytes,1,opt,name=session,proto3" json:"session,omitempty"`
	Source    string   `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Seq       uint64   `protobuf:"varint,3,opt,name=seq,proto3" json:"seq,omitempty"`
	Timestamp string   `protobuf:"bytes,4,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	AccelX    string   `protobuf:"bytes,5,opt,name=accel_x,json=accelX,proto3" json:"accel_x,omitempty"`
	AccelY    string   `protobuf:"bytes,6,opt,name=accel_y,json=accelY,proto3" json:"accel_y,omitempty"`
	AccelZ    string   `protobuf:"bytes,7,opt,name=accel_z,json=accelZ,proto3" json:"accel_z,omitempty"`
	GyroX     string   `protobuf:"bytes,8,opt,name=gyro_x,json=gyroX,proto3" json:"gyro_x,omitempty"`
	GyroY     string   `protobuf:"bytes,9,opt,name=gyro_y,json=gyroY,proto3" json:"gyro_y,omitempty"`
	GyroZ     string   `protobuf:"bytes,10,opt,name=gyro_z,json=gyroZ,proto3" json:"gyro_z,omitempty"`
	Motion    string   `protobuf:"bytes,11,opt,name=motion,proto3" json:"motion,omitempty"`
	Extra     []string `protobuf:"bytes,12,rep,name=extra,proto3" json:"extra,omitempty"`
}

// Reset implements proto.Message.
func (m *Sample) Reset() { *m = Sample{} }

// String implements proto.Message.
func (m *Sample) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Sample) ProtoMessage() {}

// Sample converts the record for publishing.
func (r *Record) Sample(session, source string, seq uint64) *Sample {
	s := &Sample{
		Session:   session,
		Source:    source,
		Seq:       seq,
		Timestamp: r.Timestamp,
		AccelX:    r.Field(AccelX),
		AccelY:    r.Field(AccelY),
		AccelZ:    r.Field(AccelZ),
		GyroX:     r.Field(GyroX),
		GyroY:     r.Field(GyroY),
		GyroZ:     r.Field(GyroZ),
		Motion:    r.Field(Motion),
	}
	if len(r.Fields) > FieldCount {
		s.Extra = append([]string(nil), r.Fields[FieldCount:]...)
	}
	return s
}

// Fields returns the sample fields in wire order.
func (m *Sample) Fields() []string {
	fields := []string{m.AccelX, m.AccelY, m.AccelZ, m.GyroX, m.GyroY, m.GyroZ, m.Motion}
	return append(fields, m.Extra...)
}

// Encode encodes the sample to bytes.
func (m *Sample) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeSample decodes bytes into Sample.
func DecodeSample(data []byte) (*Sample, error) {
	var s Sample
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
