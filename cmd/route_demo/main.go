// route_demo is the host-layer CLI surface specified for completeness
// (spec §6): route_demo <container> <lat1> <lon1> <lat2> <lon2>
// [car|foot] [--dump]. Exit codes: 0 OK, 1 usage error, 2 routing
// failure. Grounded on the teacher's cmd/engine/main.go flag-parse +
// panic-on-fatal-init-error shape.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/tileroute/tileroute/pkg/apperr"
	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/rconfig"
	"github.com/tileroute/tileroute/pkg/rlog"
	"github.com/tileroute/tileroute/pkg/router"
	"github.com/tileroute/tileroute/pkg/tilestore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("route_demo", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "additionally emit the route as JSON after the plain text summary")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if n := len(rest); n > 0 && (rest[n-1] == "--dump" || rest[n-1] == "-dump") {
		*dump = true
		rest = rest[:n-1]
	}
	if len(rest) < 5 || len(rest) > 6 {
		fmt.Fprintln(stderr, "usage: route_demo <container> <lat1> <lon1> <lat2> <lon2> [car|foot] [--dump]")
		return 1
	}

	containerPath := rest[0]
	lat1, err1 := strconv.ParseFloat(rest[1], 64)
	lon1, err2 := strconv.ParseFloat(rest[2], 64)
	lat2, err3 := strconv.ParseFloat(rest[3], 64)
	lon2, err4 := strconv.ParseFloat(rest[4], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		fmt.Fprintln(stderr, "usage: route_demo: coordinates must be floating-point numbers")
		return 1
	}

	profileName := "car"
	if len(rest) == 6 {
		profileName = rest[5]
	}

	cfg, err := rconfig.Load("", "")
	if err != nil {
		fmt.Fprintln(stderr, "route_demo: load config:", err)
		return 1
	}
	cfg.ContainerPath = containerPath

	log, err := rlog.New()
	if err != nil {
		log = rlog.Nop()
	}
	defer log.Sync()

	store, err := tilestore.Open(cfg.ContainerPath, cfg.CacheCapacity, log)
	if err != nil {
		fmt.Fprintln(stderr, "route_demo:", err)
		return 2
	}
	defer store.Close()

	r := router.New(store, uint8(cfg.Zoom), cfg.FrameMin, cfg.FrameMax, cfg.CarVRefMps, cfg.FootVRefMps, router.WithLogger(log))

	waypoints := []geo.Coordinate{geo.NewCoordinate(lat1, lon1), geo.NewCoordinate(lat2, lon2)}
	result := r.Route(profileName, waypoints)

	printPlain(stdout, result)
	if *dump {
		printJSON(stdout, result)
	}

	if result.Status == apperr.OK {
		return 0
	}
	return 2
}

func printPlain(w *os.File, result router.RouteResult) {
	if result.Status != apperr.OK {
		fmt.Fprintf(w, "status=%s message=%s\n", result.Status, result.Message)
		return
	}
	fmt.Fprintf(w, "distance_m=%.2f duration_s=%.2f points=%d edges=%d\n",
		result.DistanceM, result.DurationS, len(result.Polyline), len(result.EdgeIds))
	for _, p := range result.Polyline {
		fmt.Fprintf(w, "%.6f %.6f\n", p.Lat, p.Lon)
	}
}

// dumpDoc is the --dump JSON shape (spec SUPPLEMENTED FEATURES): the same
// fields the plain-text output reports, plus the raw edge-id integers for
// tooling that wants to cross-reference the container directly.
type dumpDoc struct {
	Status    string       `json:"status"`
	Message   string       `json:"message,omitempty"`
	DistanceM float64      `json:"distance_m"`
	DurationS float64      `json:"duration_s"`
	Points    [][2]float64 `json:"points"`
	EdgeIds   []uint64     `json:"edge_ids"`
}

func printJSON(w *os.File, result router.RouteResult) {
	doc := dumpDoc{
		Status:    result.Status.String(),
		Message:   result.Message,
		DistanceM: result.DistanceM,
		DurationS: result.DurationS,
	}
	for _, p := range result.Polyline {
		doc.Points = append(doc.Points, [2]float64{p.Lat, p.Lon})
	}
	for _, id := range result.EdgeIds {
		doc.EdgeIds = append(doc.EdgeIds, uint64(id))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(doc)
}
