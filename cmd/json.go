package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fantop/fantop/engine"
)

// runJSON prints one full evaluation as indented JSON and exits. Two
// cycles run back to back so the temperature rate has a baseline.
func runJSON(eng *engine.Engine) error {
	eng.Tick()
	time.Sleep(1 * time.Second)
	ev := eng.Tick()

	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
