package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/imurecv/pkg/mqtt"
	"github.com/robotalks/imurecv/pkg/telemetry"
)

var (
	mqttURL = mqtt.DefaultURL
)

func init() {
	if val := os.Getenv("IMU_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.SubSamples(func(topic string, s *telemetry.Sample) {
		log.Printf("%s: #%d [%s] %s", s.Source, s.Seq, s.Timestamp, strings.Join(s.Fields(), ","))
	})
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	<-(chan struct{})(nil)
}
