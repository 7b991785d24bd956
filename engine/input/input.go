package input

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/chewxy/math32"
)

// Input is the normalized control state the frame loop polls once per frame.
// Window callbacks feed raw key and mouse events in; Poll folds held keys into the movement vector
// and fires the jump hook while the jump key is held.
type Input interface {
	// KeyDown records a key press.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	KeyUp(keyCode uint32)

	// MouseDown records a button press at a cursor position. Two presses within the double-click
	// window fire the jump hook.
	//
	// Parameters:
	//   - button: the GLFW mouse button index
	//   - x, y: the cursor position in window coordinates
	MouseDown(button int, x, y float32)

	// MouseUp records a button release.
	//
	// Parameters:
	//   - button: the GLFW mouse button index
	MouseUp(button int)

	// MouseMove rotates the look angles while a look button is held.
	//
	// Parameters:
	//   - x, y: the cursor position in window coordinates
	MouseMove(x, y float32)

	// Poll recomputes the movement vector from the held keys and fires the jump hook if the jump key is held.
	Poll()

	// Movement returns the strafe (x) and forward (y) components, each in [-1, 1].
	//
	// Returns:
	//   - x: strafe, positive to the right
	//   - y: forward, positive away from the camera
	Movement() (x, y float32)

	// Camera returns the look angles in radians. Pitch is always within the pitch limit.
	//
	// Returns:
	//   - yaw: the orbit yaw
	//   - pitch: the orbit pitch
	Camera() (yaw, pitch float32)

	// SetJumpCallback sets the hook fired on every jump request.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetJumpCallback(callback func())
}

type inputImpl struct {
	mu *sync.Mutex

	keys    map[uint32]bool
	buttons map[int]bool
	moveX   float32
	moveY   float32

	yaw        float32
	pitch      float32
	pitchLimit float32
	lookSpeed  float32
	lastLook   [2]float32

	doubleClick time.Duration
	lastClick   time.Time
	clock       func() time.Time

	onJump func()
}

var _ Input = &inputImpl{}

// NewInput creates an Input with look yaw 0, pitch 0.35, a sensitivity of 0.006 rad/pixel,
// a pitch limit of ±1.2 and a 300 ms double-click window, then applies options.
//
// Parameters:
//   - options: functional options to override the defaults
//
// Returns:
//   - Input: the new input state
func NewInput(options ...InputBuilderOption) Input {
	in := &inputImpl{
		mu:          &sync.Mutex{},
		keys:        make(map[uint32]bool),
		buttons:     make(map[int]bool),
		pitch:       0.35,
		pitchLimit:  1.2,
		lookSpeed:   0.006,
		doubleClick: 300 * time.Millisecond,
		clock:       time.Now,
	}
	for _, opt := range options {
		opt(in)
	}
	in.pitch = clampPitch(in.pitch, in.pitchLimit)
	return in
}

func (in *inputImpl) KeyDown(keyCode uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.keys[keyCode] = true
}

func (in *inputImpl) KeyUp(keyCode uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.keys, keyCode)
}

func (in *inputImpl) MouseDown(button int, x, y float32) {
	in.mu.Lock()
	now := in.clock()
	jump := !in.lastClick.IsZero() && now.Sub(in.lastClick) < in.doubleClick
	in.lastClick = now
	in.buttons[button] = true
	in.lastLook = [2]float32{x, y}
	onJump := in.onJump
	in.mu.Unlock()

	if jump && onJump != nil {
		onJump()
	}
}

func (in *inputImpl) MouseUp(button int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.buttons, button)
}

func (in *inputImpl) MouseMove(x, y float32) {
	in.mu.Lock()
	defer in.mu.Unlock()

	dx, dy := x-in.lastLook[0], y-in.lastLook[1]
	in.lastLook = [2]float32{x, y}
	if !in.buttons[common.MouseButtonLeft] && !in.buttons[common.MouseButtonRight] {
		return
	}
	in.yaw -= dx * in.lookSpeed
	in.pitch = clampPitch(in.pitch-dy*in.lookSpeed, in.pitchLimit)
}

func (in *inputImpl) Poll() {
	in.mu.Lock()
	var x, y float32
	if in.held(common.KeyW, common.KeyUp) {
		y++
	}
	if in.held(common.KeyS, common.KeyDown) {
		y--
	}
	if in.held(common.KeyA, common.KeyLeft) {
		x--
	}
	if in.held(common.KeyD, common.KeyRight) {
		x++
	}
	if l := math32.Hypot(x, y); l > 0 {
		x, y = x/l, y/l
	}
	in.moveX, in.moveY = x, y
	jump := in.keys[common.KeySpace]
	onJump := in.onJump
	in.mu.Unlock()

	if jump && onJump != nil {
		onJump()
	}
}

// held reports whether any of keys is down.
func (in *inputImpl) held(keys ...uint32) bool {
	for _, k := range keys {
		if in.keys[k] {
			return true
		}
	}
	return false
}

func (in *inputImpl) Movement() (float32, float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.moveX, in.moveY
}

func (in *inputImpl) Camera() (float32, float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.yaw, in.pitch
}

func (in *inputImpl) SetJumpCallback(callback func()) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.onJump = callback
}

func clampPitch(pitch, limit float32) float32 {
	return max(-limit, min(limit, pitch))
}
