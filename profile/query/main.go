// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

package main

import (
	"github.com/OvermindDL1/enrs"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	V int64
	W int64
}

type comp4 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 10000
	entities := 100000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		reg := enrs.NewRegistry(enrs.WithCapacity(numEntities))
		for _, e := range reg.CreateN(numEntities) {
			enrs.Emplace(reg, e, comp1{V: 1, W: 2})
			enrs.Emplace(reg, e, comp2{V: 3, W: 4})
			enrs.Emplace(reg, e, comp3{})
			enrs.Emplace(reg, e, comp4{})
		}
		view := enrs.NewView4[comp1, comp2, comp3, comp4](reg)

		for range iters {
			view.Reset()
			for view.Next() {
				c1, c2, _, _ := view.Get()
				c1.V += c2.V
				c1.W += c2.W
			}
		}
	}
}
