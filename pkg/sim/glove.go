// Package sim emulates the glove firmware for bench testing the receiver.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/robotalks/imurecv/pkg/telemetry"
)

// Raw sensor scale at the firmware's default ranges.
const (
	// AccelPerG is the raw accelerometer reading of 1g at ±2g range.
	AccelPerG = 16384
	// GyroPerDPS is the raw gyroscope reading of 1°/s at ±250°/s range.
	GyroPerDPS = 131
)

// DefaultMotionThreshold is the gyro magnitude, in raw units, above
// which a reading is flagged MOTION.
const DefaultMotionThreshold = 20 * GyroPerDPS

// Motion labels.
const (
	Still  = "STILL"
	Motion = "MOTION"
)

// Banner returns the lines the firmware prints after reset.
func Banner() []string {
	return []string{
		"Smart Glove System Starting...",
		"5-Sensor MPU6050 with TCA9548A Multiplexer",
		"-------------------------------------------",
	}
}

// Reading is a single sensor sample in raw units.
type Reading struct {
	Accel  [3]int16
	Gyro   [3]int16
	Motion bool
}

// Label returns the motion label.
func (r Reading) Label() string {
	if r.Motion {
		return Motion
	}
	return Still
}

// Line formats the reading as a telemetry line without terminator.
func (r Reading) Line() string {
	fields := make([]string, 0, 7)
	for _, v := range r.Accel {
		fields = append(fields, fmt.Sprint(v))
	}
	for _, v := range r.Gyro {
		fields = append(fields, fmt.Sprint(v))
	}
	return strings.Join(append(fields, r.Label()), ",")
}

// Generator produces readings of a hand resting on a table with
// occasional gestures.
type Generator struct {
	// MotionThreshold is compared with the gyro magnitude.
	MotionThreshold float64
	// GestureChance is the probability that a gesture starts on a
	// still sample.
	GestureChance float64
	// GestureLength is the number of samples of a gesture.
	GestureLength int

	rand    *rand.Rand
	gesture int
	phase   float64
}

// NewGenerator creates a Generator. The same seed yields the same readings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		MotionThreshold: DefaultMotionThreshold,
		GestureChance:   0.05,
		GestureLength:   20,
		rand:            rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next reading.
func (g *Generator) Next() Reading {
	if g.gesture == 0 && g.rand.Float64() < g.GestureChance {
		g.gesture = g.GestureLength
		g.phase = g.rand.Float64() * 2 * math.Pi
	}

	accel := [3]float64{0, 0, AccelPerG}
	var gyro [3]float64
	if g.gesture > 0 {
		progress := 1 - float64(g.gesture)/float64(g.GestureLength)
		swing := math.Sin(progress * math.Pi)
		gyro[0] = 120 * GyroPerDPS * swing * math.Cos(g.phase)
		gyro[1] = 120 * GyroPerDPS * swing * math.Sin(g.phase)
		accel[0] = 0.4 * AccelPerG * swing
		g.gesture--
	}

	var r Reading
	var mag float64
	for i := range accel {
		r.Accel[i] = clamp(accel[i] + g.rand.NormFloat64()*200)
		r.Gyro[i] = clamp(gyro[i] + g.rand.NormFloat64()*40)
		mag += float64(r.Gyro[i]) * float64(r.Gyro[i])
	}
	r.Motion = math.Sqrt(mag) > g.MotionThreshold
	return r
}

// fingerSpread is the resting roll of each finger relative to the hand.
var fingerSpread = [telemetry.Fingers]float64{-12, -4, 0, 4, 10}

// Frame converts a reading to a gesture frame. The hand attitude comes
// from the accelerometer, and fingers curl with the gyro magnitude.
func (g *Generator) Frame(r Reading, tsMS uint32) *telemetry.Frame {
	ax, ay, az := float64(r.Accel[0]), float64(r.Accel[1]), float64(r.Accel[2])
	roll := math.Atan2(ay, az) * 180 / math.Pi
	pitch := math.Atan2(-ax, math.Hypot(ay, az)) * 180 / math.Pi

	var mag float64
	for _, v := range r.Gyro {
		mag += float64(v) * float64(v)
	}
	curl := math.Min(math.Sqrt(mag)/GyroPerDPS, 60)

	var rolls, pitches [telemetry.Fingers]float64
	for i := range rolls {
		rolls[i] = roll + fingerSpread[i]
		pitches[i] = pitch + curl*float64(i+1)/telemetry.Fingers
	}
	return telemetry.NewFrame(tsMS, rolls, pitches)
}

func clamp(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(math.Round(v))
}
