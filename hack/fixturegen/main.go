// Command fixturegen drives a running autoscaler's /tick endpoint with
// synthetic instance snapshots, oscillating each instance's load metric on
// a sine wave so scale-out and scale-in decisions both get exercised.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var args struct {
	TickURL      string `arg:"--tick-url" default:"http://127.0.0.1:8090/tick"`
	ProjectID    string `arg:"--project-id" default:"fixture"`
	NumInstances int    `arg:"--num-instances" default:"1"`
	BaseValue    int    `arg:"--base-value" default:"50"`
	FullPeriod   int    `arg:"--full-period" default:"7200"`
	MetricsPort  int    `arg:"--metrics-port" default:"9091"`
	TickInterval int    `arg:"--tick-interval-seconds" default:"5"`
}

var tickCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fixturegen",
	Name:      "tick_calls_total",
	Help:      "Number of /tick requests sent per instance, by outcome",
}, []string{"instance", "outcome"})

// snapshotPayload mirrors snapshot.Snapshot's wire shape. It is duplicated
// here rather than imported so this tool stays a standalone module with no
// dependency on the autoscaler's own packages.
type snapshotPayload struct {
	ProjectID  string `json:"projectId"`
	InstanceID string `json:"instanceId"`

	Units       int32 `json:"units"`
	CurrentSize int32 `json:"currentSize"`
	MinSize     int32 `json:"minSize"`
	MaxSize     int32 `json:"maxSize"`

	ScaleOutCoolingMinutes int32 `json:"scaleOutCoolingMinutes"`
	ScaleInCoolingMinutes  int32 `json:"scaleInCoolingMinutes"`

	ScalingMethod string `json:"scalingMethod"`

	Metrics []metricPayload `json:"metrics,omitempty"`
}

type metricPayload struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Margin    float64 `json:"margin"`
}

// loadAt returns a synthetic metric value oscillating with amplitude
// baseValue and a period of resolution seconds around baseValue plus a fixed
// per-instance offset of up to 10% of baseValue.
func loadAt(unixSeconds float64, instance int, baseValue, resolution int) float64 {
	rand.Seed(int64(instance))
	offset := float64(baseValue)
	fuzz := rand.Float64() * offset * 0.1
	return offset + fuzz + float64(baseValue)*math.Sin(unixSeconds*(math.Pi*2/float64(resolution)))
}

func runGenerator(instance int, currentSize *int32, sizeMu *sync.Mutex) {
	instanceID := fmt.Sprintf("inst-%d", instance)
	ticker := time.NewTicker(time.Duration(args.TickInterval) * time.Second)
	for range ticker.C {
		value := loadAt(float64(time.Now().Unix()), instance, args.BaseValue, args.FullPeriod)

		sizeMu.Lock()
		size := *currentSize
		sizeMu.Unlock()

		payload := snapshotPayload{
			ProjectID:              args.ProjectID,
			InstanceID:             instanceID,
			CurrentSize:            size,
			MinSize:                1,
			MaxSize:                16,
			ScaleOutCoolingMinutes: 5,
			ScaleInCoolingMinutes:  10,
			ScalingMethod:          "stepwise",
			Metrics: []metricPayload{
				{Name: "cpu", Value: value, Threshold: 65, Margin: 0.1},
			},
		}

		body, err := json.Marshal(payload)
		if err != nil {
			log.Printf("instance %s: marshal failed: %v", instanceID, err)
			continue
		}
		resp, err := http.Post(args.TickURL, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("instance %s: tick request failed: %v", instanceID, err)
			tickCalls.WithLabelValues(instanceID, "error").Inc()
			continue
		}
		resp.Body.Close()
		tickCalls.WithLabelValues(instanceID, strconv.Itoa(resp.StatusCode)).Inc()
		log.Printf("instance %s: posted metric=%.1f size=%d -> %s", instanceID, value, size, resp.Status)
	}
}

func runMetricsServer(port int) {
	log.Printf("serving /metrics on port %d", port)
	http.Handle("/metrics", promhttp.Handler())
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}

func main() {
	arg.MustParse(&args)
	prometheus.MustRegister(tickCalls)

	wg := sync.WaitGroup{}
	for i := 0; i < args.NumInstances; i++ {
		instance := i
		size := int32(4)
		var sizeMu sync.Mutex
		wg.Add(1)
		go func() {
			defer wg.Done()
			runGenerator(instance, &size, &sizeMu)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		runMetricsServer(args.MetricsPort)
	}()
	wg.Wait()
}
