package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	worldWidth  = 20.0
	worldHeight = 10.0
	wallSize    = 0.5
)

// TextDebugger prints the debug requests of the world instead of drawing them
type TextDebugger struct {
	lines int
}

func (d *TextDebugger) DrawLine(from, to mgl64.Vec2, color feather2d.Color) {
	d.lines++
}

func (d *TextDebugger) DisplayText(text string) {
	fmt.Printf("   %s\n", text)
}

func (d *TextDebugger) DisplayTextWorld(text string, at mgl64.Vec2) {}

func addStatic(world *feather2d.World, position mgl64.Vec2, width, height float64) error {
	p, err := actor.NewRectangle(width, height)
	if err != nil {
		return err
	}
	p.Transform.Position = position
	p.Density = 0
	world.AddBody(p)

	return nil
}

// SetupScene creates a floor and two walls, a block of small squares on the floor,
// and a heavy round polygon thrown at the block
func SetupScene(world *feather2d.World, rng *rand.Rand) (*actor.Polygon, error) {
	floorY := -worldHeight * 0.5
	if err := addStatic(world, mgl64.Vec2{0, floorY}, worldWidth, wallSize); err != nil {
		return nil, err
	}
	if err := addStatic(world, mgl64.Vec2{-worldWidth * 0.5, 0}, wallSize, worldHeight); err != nil {
		return nil, err
	}
	if err := addStatic(world, mgl64.Vec2{worldWidth * 0.5, 0}, wallSize, worldHeight); err != nil {
		return nil, err
	}

	const size = 0.5
	start := mgl64.Vec2{0, floorY + 0.5 + 0.5*size}
	for i := 0; i < 5; i++ {
		for j := 0; j < 8; j++ {
			p, err := actor.NewSquare(size)
			if err != nil {
				return nil, err
			}
			p.Transform.Position = start.Sub(mgl64.Vec2{float64(i + i), float64(-j)}.Mul(size))
			p.Density = 0.001 + rng.Float64()*0.049
			world.AddBody(p)
		}
	}

	circle, err := actor.NewRegularPolygon(1.0, 50)
	if err != nil {
		return nil, err
	}
	circle.Transform.Position = mgl64.Vec2{5.0, -2.5}
	circle.Speed = mgl64.Vec2{-60.0, 0}
	circle.Density = 0.3
	world.AddBody(circle)

	return circle, nil
}

func main() {
	config := feather2d.DefaultConfig()
	if len(os.Args) > 1 {
		var err error
		if config, err = feather2d.LoadConfig(os.Args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	config.Debug = true

	world, err := feather2d.NewWorld(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	world.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	debugger := &TextDebugger{}
	world.Debug = debugger

	circle, err := SetupScene(world, rand.New(rand.NewSource(1)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	enter := 0
	world.Events.Subscribe(feather2d.COLLISION_ENTER, func(event feather2d.Event) {
		enter++
	})

	fmt.Printf("Small physic scene: %d bodies\n", world.Len())

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 180

	for step := 0; step < maxSteps; step++ {
		if step%30 == 0 {
			fmt.Printf("--- STEP %d ---\n", step)
			fmt.Printf("   Circle position: %v, speed: %v\n", circle.Transform.Position, circle.Speed)
		}
		world.Config.Debug = step%30 == 0
		world.Step(dt)
	}

	colliding := 0
	world.ForEach(func(body *actor.Polygon) {
		if body.IsColliding {
			colliding++
		}
	})

	fmt.Printf("Done: %d collision enter events, %d bodies colliding, %d debug lines\n",
		enter, colliding, debugger.lines)
}
