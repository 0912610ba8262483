// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

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

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		reg := enrs.NewRegistry(enrs.WithCapacity(numEntities))
		view := enrs.NewView2[comp1, comp2](reg)

		for range iters {
			for _, e := range reg.CreateN(numEntities) {
				enrs.Emplace(reg, e, comp1{V: 1, W: 2})
				enrs.Emplace(reg, e, comp2{V: 3, W: 4})
			}
			entities := []enrs.Entity{}
			view.Reset()
			for view.Next() {
				entities = append(entities, view.Entity())
				c1, c2 := view.Get()
				c1.V += c2.V
				c1.W += c2.W
			}
			for _, e := range entities {
				reg.Destroy(e)
			}
		}
	}
}
