package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/quacksim/quacksim/internal/bag"
	"github.com/quacksim/quacksim/internal/player"
	"github.com/quacksim/quacksim/internal/scenario"
	"github.com/quacksim/quacksim/internal/shop"
	"github.com/quacksim/quacksim/internal/stats"
)

type roundResp struct {
	player.RoundOutcome
	Stopped string `json:"stopped"`
}

type probabilityResp struct {
	Probability float64 `json:"probability"`
}

type bagResp struct {
	Tokens        map[string][]int `json:"tokens"`
	BustThreshold int              `json:"bust_threshold"`
	Hazard        string           `json:"hazard"`
}

type mutateResp struct {
	Found bool             `json:"found"`
	Bag   map[string][]int `json:"bag"`
}

type shopResp struct {
	shop.Plan
	Applied bool `json:"applied"`
}

var (
	loader   *scenario.Loader
	current  *player.Player
	settings scenario.Settings
	lock     sync.Mutex
)

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseBool(r *http.Request, key string) (bool, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return false, false, ""
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false, "invalid " + key
	}
	return v, true, ""
}

func parseSeed(r *http.Request, key string) (uint64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// groupPool renders the pool grouped by color, values in insertion
// order.
func groupPool(b *bag.Bag) map[string][]int {
	out := make(map[string][]int)
	for _, t := range b.Tokens(bag.ScopePool) {
		out[string(t.Color)] = append(out[string(t.Color)], t.Value)
	}
	return out
}

// one round, optional stop/risk/seed overrides
func handleRound(w http.ResponseWriter, r *http.Request) {
	stop, hasStop, msg := parseBool(r, "stop")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	risk, hasRisk, msg := parseFloat(r, "risk")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if hasRisk && (risk < 0 || risk > 1) {
		http.Error(w, "risk must be in [0,1]", http.StatusBadRequest)
		return
	}
	seed, hasSeed, msg := parseSeed(r, "seed")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	lock.Lock()
	defer lock.Unlock()

	stopPolicy := settings.StopBeforeExplosion
	tolerance := settings.RiskTolerance
	if hasStop {
		stopPolicy = stop
	}
	if hasRisk {
		stopPolicy = true
		tolerance = risk
	}

	p := current
	if hasSeed {
		// reproducible one-off round on an independent clone
		p = current.Clone(bag.NewSeededRNG(seed))
	}
	out := p.SimulateRound(stopPolicy, tolerance)
	writeJSON(w, roundResp{RoundOutcome: out, Stopped: out.Stopped.String()})
}

// bulk Monte Carlo comparison of both strategies
func handleSimulate(w http.ResponseWriter, r *http.Request) {
	lock.Lock()
	// clone while locked: the run reads the pool after the lock is
	// released, so it must not share the live bag's backing array
	p := current.Clone(bag.DefaultRNG())
	rounds := settings.Rounds
	tolerance := settings.RiskTolerance
	seed := settings.Seed
	workers := settings.Workers
	lock.Unlock()

	if v, ok, msg := parseInt(r, "rounds"); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	} else if ok {
		rounds = v
	}
	if v, ok, msg := parseFloat(r, "risk"); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	} else if ok {
		if v < 0 || v > 1 {
			http.Error(w, "risk must be in [0,1]", http.StatusBadRequest)
			return
		}
		tolerance = v
	}
	if v, ok, msg := parseSeed(r, "seed"); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	} else if ok {
		seed = v
	}
	if v, ok, msg := parseInt(r, "workers"); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	} else if ok {
		workers = v
	}

	cmp, err := stats.Compare(p, rounds, tolerance, seed, workers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, cmp)
}

// first-draw explosion probability of the current pool
func handleProbability(w http.ResponseWriter, r *http.Request) {
	lock.Lock()
	prob := current.Bag.ExplosionProbability()
	lock.Unlock()
	writeJSON(w, probabilityResp{Probability: prob})
}

func handleBag(w http.ResponseWriter, r *http.Request) {
	lock.Lock()
	resp := bagResp{
		Tokens:        groupPool(current.Bag),
		BustThreshold: current.Bag.BustThreshold,
		Hazard:        string(current.Bag.Hazard),
	}
	lock.Unlock()
	writeJSON(w, resp)
}

func parseTokenParams(w http.ResponseWriter, r *http.Request) (bag.Color, int, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return "", 0, false
	}
	color := r.URL.Query().Get("color")
	if color == "" {
		http.Error(w, "missing param color", http.StatusBadRequest)
		return "", 0, false
	}
	value, ok, msg := parseInt(r, "value")
	if !ok || msg != "" || value < 1 {
		http.Error(w, "missing/invalid param value", http.StatusBadRequest)
		return "", 0, false
	}
	return bag.Color(color), value, true
}

func handleBagAdd(w http.ResponseWriter, r *http.Request) {
	color, value, ok := parseTokenParams(w, r)
	if !ok {
		return
	}
	lock.Lock()
	current.Bag.AddPermanent(color, value)
	resp := mutateResp{Found: true, Bag: groupPool(current.Bag)}
	lock.Unlock()
	writeJSON(w, resp)
}

func handleBagRemove(w http.ResponseWriter, r *http.Request) {
	color, value, ok := parseTokenParams(w, r)
	if !ok {
		return
	}
	lock.Lock()
	found := current.Bag.RemovePermanent(color, value)
	resp := mutateResp{Found: found, Bag: groupPool(current.Bag)}
	lock.Unlock()
	writeJSON(w, resp)
}

// purchase planning; apply=true also adds the chips to the pool
func handleShopPlan(w http.ResponseWriter, r *http.Request) {
	coins, ok, msg := parseInt(r, "coins")
	if !ok || msg != "" {
		http.Error(w, "missing/invalid param coins", http.StatusBadRequest)
		return
	}
	apply, _, msg := parseBool(r, "apply")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	plan := shop.BestSpend(shop.DefaultCatalog(), coins)
	if apply {
		lock.Lock()
		shop.Apply(plan, current.Bag)
		lock.Unlock()
	}
	writeJSON(w, shopResp{Plan: plan, Applied: apply})
}

func handleScenarioLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing param name", http.StatusBadRequest)
		return
	}
	if err := loadScenario(name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	handleBag(w, r)
}

func loadScenario(name string) error {
	cfg, err := loader.LoadMerged(name)
	if err != nil {
		return err
	}
	p, s, err := scenario.Build(cfg, nil)
	if err != nil {
		return err
	}
	lock.Lock()
	current = p
	settings = s
	lock.Unlock()
	return nil
}

func main() {
	cfg, err := loadServerConfig()
	if err != nil {
		log.Fatal(err)
	}

	loader = scenario.NewLoader(cfg.ConfigDir)
	if err := loadScenario(cfg.Scenario); err != nil {
		log.Fatal(err)
	}

	watcher := scenario.NewWatcher(loader.WatchPaths(cfg.Scenario), cfg.WatchInterval, func(path string) {
		log.Printf("scenario file %s changed; reloading", path)
		loader.Invalidate()
		if err := loadScenario(cfg.Scenario); err != nil {
			log.Printf("reload failed: %v", err)
		}
	})
	watcher.Start()
	defer watcher.Stop()

	http.HandleFunc("/round", handleRound)
	http.HandleFunc("/simulate", handleSimulate)
	http.HandleFunc("/probability", handleProbability)
	http.HandleFunc("/bag", handleBag)
	http.HandleFunc("/bag/add", handleBagAdd)
	http.HandleFunc("/bag/remove", handleBagRemove)
	http.HandleFunc("/shop/plan", handleShopPlan)
	http.HandleFunc("/scenario/load", handleScenarioLoad)

	log.Printf("listening on %s (scenario %q) ...", cfg.Addr, cfg.Scenario)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}
