// Package arcade implements a small Atari-like game which can be used
// as a base environment wherever the Arcade Learning Environment is
// not available.
//
// The game, Catch, renders 210x160 RGB frames like the Atari 2600.
// A ball is served from the top of the screen and must be caught with
// a paddle at the bottom. The ball stays frozen at the top until the
// player fires, and the ball sprite is only drawn on every second
// frame. Missing the ball costs a life. Once all lives are lost, the
// game keeps running for a few frames before it reports that it is
// over.
package arcade

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
	"github.com/samuelfneumann/goatari/utils/floatutils"
	"gorgonia.org/tensor"
)

// Screen dimensions
const (
	ScreenWidth  int = 160
	ScreenHeight int = 210
)

// ID is the identifier of the Catch environment
const ID string = "ArcadeCatchNoFrameskip-v0"

// Actions of the Catch environment
const (
	Noop int = iota
	Fire
	Right
	Left
)

var actionMeanings = []string{"NOOP", "FIRE", "RIGHT", "LEFT"}

// Layout of the game
const (
	paddleY      float64 = 190
	paddleHeight float64 = 4
	paddleSpeed  float64 = 4
	ballRadius   float64 = 2
	serveY       float64 = 20
	wallMargin   float64 = 8
)

// Config configures the rules of Catch
type Config struct {
	Lives         int
	PaddleWidth   float64
	BallSpeed     float64
	CatchReward   float64
	MissReward    float64
	GameOverDelay int // Frames at 0 lives before the game is over
}

// DefaultConfig returns the default configuration of Catch
func DefaultConfig() Config {
	return Config{
		Lives:         3,
		PaddleWidth:   16,
		BallSpeed:     3,
		CatchReward:   1,
		MissReward:    -1,
		GameOverDelay: 2,
	}
}

// Catch implements the Catch game as an environment.Environment
type Catch struct {
	config Config
	rng    *rand.Rand
	dc     *gg.Context

	lives          int
	paddleX        float64 // Centre of the paddle
	ballX, ballY   float64
	ballVX         float64
	serving        bool
	gameOverFrames int
	over           bool

	frame        int // Frames since construction, drives flicker
	episodeFrame int
}

// New returns a new Catch environment. The environment must be reset
// before it is stepped.
func New(c Config, seed uint64) (*Catch, error) {
	if c.Lives < 1 {
		return nil, fmt.Errorf("new: lives must be positive, got %v", c.Lives)
	}
	if c.PaddleWidth <= 0 || c.BallSpeed <= 0 {
		return nil, fmt.Errorf("new: paddle width and ball speed must be "+
			"positive, got %v and %v", c.PaddleWidth, c.BallSpeed)
	}
	if c.GameOverDelay < 0 {
		return nil, fmt.Errorf("new: game over delay must be non-negative, "+
			"got %v", c.GameOverDelay)
	}

	return &Catch{
		config: c,
		rng:    rand.New(rand.NewSource(seed)),
		dc:     gg.NewContext(ScreenWidth, ScreenHeight),
		over:   true,
	}, nil
}

// Reset starts a new game
func (c *Catch) Reset() (ts.TimeStep, error) {
	c.lives = c.config.Lives
	c.paddleX = float64(ScreenWidth) / 2
	c.gameOverFrames = 0
	c.over = false
	c.episodeFrame = 0
	c.serve()

	step := ts.New(ts.First, 0, c.render(), 0)
	step.SetInfo("lives", c.lives)
	return step, nil
}

// Step advances the game by one frame
func (c *Catch) Step(action int) (ts.TimeStep, bool, error) {
	if c.over {
		return ts.TimeStep{}, true, fmt.Errorf("step: game is over, the " +
			"environment must be reset")
	}
	if action < 0 || action >= len(actionMeanings) {
		return ts.TimeStep{}, true, fmt.Errorf("step: no such action %v",
			action)
	}
	c.frame++
	c.episodeFrame++

	switch action {
	case Fire:
		if c.serving && c.lives > 0 {
			c.serving = false
		}
	case Right:
		c.paddleX += paddleSpeed
	case Left:
		c.paddleX -= paddleSpeed
	}
	half := c.config.PaddleWidth / 2
	c.paddleX = floatutils.Clip(c.paddleX, half, float64(ScreenWidth)-half)

	reward := 0.0
	if c.lives == 0 {
		c.gameOverFrames++
	} else if !c.serving {
		reward = c.moveBall()
	}
	c.over = c.lives == 0 && c.gameOverFrames >= c.config.GameOverDelay

	stepType := ts.Mid
	if c.over {
		stepType = ts.Last
	}
	step := ts.New(stepType, reward, c.render(), c.episodeFrame)
	step.SetInfo("lives", c.lives)

	return step, c.over, nil
}

// moveBall moves the ball by one frame and returns the reward for
// catching or missing it
func (c *Catch) moveBall() float64 {
	c.ballY += c.config.BallSpeed
	c.ballX += c.ballVX
	if c.ballX < ballRadius || c.ballX > float64(ScreenWidth)-ballRadius {
		c.ballVX = -c.ballVX
		c.ballX = floatutils.Clip(c.ballX, ballRadius,
			float64(ScreenWidth)-ballRadius)
	}

	if c.ballY < paddleY {
		return 0
	}

	reach := c.config.PaddleWidth/2 + ballRadius
	reward := c.config.CatchReward
	if math.Abs(c.ballX-c.paddleX) > reach {
		reward = c.config.MissReward
		c.lives--
	}
	c.serve()

	return reward
}

// serve places the ball at a random position at the top of the screen
// where it waits to be fired
func (c *Catch) serve() {
	c.serving = true
	c.ballY = serveY
	c.ballX = wallMargin + c.rng.Float64()*(float64(ScreenWidth)-2*wallMargin)
	c.ballVX = float64(c.rng.Intn(3) - 1)
}

// render draws the current frame and returns it as a tensor of shape
// (ScreenHeight, ScreenWidth, 3)
func (c *Catch) render() *tensor.Dense {
	c.dc.SetRGB255(0, 0, 0)
	c.dc.Clear()

	c.dc.SetRGB255(200, 72, 72)
	c.dc.DrawRectangle(c.paddleX-c.config.PaddleWidth/2, paddleY,
		c.config.PaddleWidth, paddleHeight)
	c.dc.Fill()

	// The ball flickers
	if c.lives > 0 && c.frame%2 == 0 {
		c.dc.SetRGB255(236, 236, 236)
		c.dc.DrawCircle(c.ballX, c.ballY, ballRadius)
		c.dc.Fill()
	}

	return toTensor(c.dc.Image())
}

// toTensor converts an image to a tensor of shape (height, width, 3)
// holding its red, green, and blue values in [0, 255]
func toTensor(img image.Image) *tensor.Dense {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]float64, 0, w*h*3)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*w]
			for x := 0; x < w; x++ {
				data = append(data, float64(row[4*x]), float64(row[4*x+1]),
					float64(row[4*x+2]))
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				data = append(data, float64(r>>8), float64(g>>8),
					float64(b>>8))
			}
		}
	}

	return tensor.New(tensor.WithShape(h, w, 3), tensor.WithBacking(data))
}

// ActionMeanings returns the names of the actions of Catch
func (c *Catch) ActionMeanings() []string {
	return append([]string(nil), actionMeanings...)
}

// Lives returns the number of lives remaining
func (c *Catch) Lives() int {
	return c.lives
}

// ID returns the identifier of Catch
func (c *Catch) ID() string {
	return ID
}

// ObservationSpec returns the observation specification of Catch
func (c *Catch) ObservationSpec() environment.Spec {
	return environment.NewSpec(tensor.Shape{ScreenHeight, ScreenWidth, 3},
		environment.Observation, 0, 255, environment.Discrete)
}

// ActionSpec returns the action specification of Catch
func (c *Catch) ActionSpec() environment.Spec {
	return environment.NewDiscreteActionSpec(len(actionMeanings))
}

// Close implements the environment.Environment interface. Catch holds
// no resources.
func (c *Catch) Close() error {
	return nil
}

// String returns a string representation of Catch
func (c *Catch) String() string {
	return fmt.Sprintf("Catch(lives: %v)", c.config.Lives)
}
