package telemetry

import "github.com/ugaemi/spotlight-server/internal/game"

// TickRow is one tick of a headless run, as written to parquet.
type TickRow struct {
	RunID         string  `parquet:"run_id,dict"`
	Seed          int64   `parquet:"seed"`
	Tick          int64   `parquet:"tick"`
	ElapsedSec    float32 `parquet:"elapsed_sec"`
	Battery       float32 `parquet:"battery"`
	ActiveLights  int32   `parquet:"active_lights"`
	Inmates       int32   `parquet:"inmates"`
	Frozen        int32   `parquet:"frozen"`
	Captured      int32   `parquet:"captured"`
	Delivered     int32   `parquet:"delivered"`
	CaughtByLight int32   `parquet:"caught_by_light"`
	Lost          int32   `parquet:"lost"`
	Score         int32   `parquet:"score"`
	Lives         int32   `parquet:"lives"`
	Level         int32   `parquet:"level"`
}

// RowFromSnapshot flattens a snapshot into a row.
func RowFromSnapshot(runID string, seed int64, snap game.Snapshot) TickRow {
	row := TickRow{
		RunID:         runID,
		Seed:          seed,
		Tick:          snap.Tick,
		ElapsedSec:    float32(snap.Elapsed),
		Battery:       float32(snap.Battery),
		Delivered:     int32(snap.State.Delivered),
		CaughtByLight: int32(snap.State.Caught),
		Lost:          int32(snap.State.Lost),
		Score:         int32(snap.State.Score),
		Lives:         int32(snap.State.Lives),
		Level:         int32(snap.State.Level),
	}
	for _, l := range snap.Spotlights {
		if l.Active {
			row.ActiveLights++
		}
	}
	for _, in := range snap.Inmates {
		row.Inmates++
		if in.State == game.InmateFrozen {
			row.Frozen++
		}
	}
	for _, p := range snap.Policemen {
		row.Captured += int32(p.Captured)
	}
	return row
}
