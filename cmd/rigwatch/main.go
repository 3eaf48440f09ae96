// rigwatch subscribes to a running visaged's rig stream and prints one
// line per frame. Useful for checking the daemon is animating without a
// dashboard.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type frame struct {
	Tick  uint64 `json:"tick"`
	State string `json:"state"`
	Pose  struct {
		HeadRotation float64 `json:"head_rotation"`
		HeadTilt     float64 `json:"head_tilt"`
		EyeOpenness  float64 `json:"eye_openness"`
		MouthOpen    float64 `json:"mouth_open"`
		MouthSmile   float64 `json:"mouth_smile"`
	} `json:"pose"`
}

func main() {
	url := flag.String("url", "ws://localhost:8420/ws/rig", "rig stream URL")
	every := flag.Uint64("every", 30, "print every Nth frame")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *url, err)
		os.Exit(1)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *url)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		os.Exit(0)
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			os.Exit(1)
		}

		var env envelope
		if err := json.Unmarshal(payload, &env); err != nil || env.Type != "frame" {
			continue
		}
		var f frame
		if err := json.Unmarshal(env.Data, &f); err != nil {
			continue
		}

		if *every == 0 || f.Tick%*every == 0 {
			fmt.Printf("tick=%d state=%s head=%+.1f° tilt=%+.1f° eyes=%.2f mouth=%.2f smile=%.2f\n",
				f.Tick, f.State,
				f.Pose.HeadRotation, f.Pose.HeadTilt,
				f.Pose.EyeOpenness, f.Pose.MouthOpen, f.Pose.MouthSmile)
		}
	}
}
