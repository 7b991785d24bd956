package character

import (
	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/chewxy/math32"
)

const (
	// groundEpsilon is the height above groundY still considered standing on the ground.
	groundEpsilon = 0.002
	// jumpMaxVerticalSpeed is the largest |velocity.y| at which a jump is still accepted.
	jumpMaxVerticalSpeed = 0.05
	// facingMinSpeed is the horizontal speed below which facing is left untouched.
	facingMinSpeed = 0.001
)

// AirPolicy selects how horizontal velocity behaves while the character is airborne.
type AirPolicy int

const (
	// AirPolicyMomentumLock freezes horizontal velocity at its last grounded value while airborne.
	AirPolicyMomentumLock AirPolicy = iota

	// AirPolicyFree recomputes horizontal velocity every tick, scaled by the air speed factor while airborne.
	AirPolicyFree
)

// String returns the configuration name of the policy.
func (p AirPolicy) String() string {
	switch p {
	case AirPolicyFree:
		return "free"
	default:
		return "momentum_lock"
	}
}

// ParseAirPolicy converts a configuration name into an AirPolicy.
//
// Parameters:
//   - name: "momentum_lock" or "free"
//
// Returns:
//   - AirPolicy: the parsed policy
//   - bool: false if the name is not recognised
func ParseAirPolicy(name string) (AirPolicy, bool) {
	switch name {
	case "", "momentum_lock":
		return AirPolicyMomentumLock, true
	case "free":
		return AirPolicyFree, true
	}
	return AirPolicyMomentumLock, false
}

type characterImpl struct {
	position common.Vec3
	velocity common.Vec3
	yaw      float32

	gravity        float32
	runSpeed       float32
	jumpVelocity   float32
	groundY        float32
	turnRate       float32
	airPolicy      AirPolicy
	airSpeedFactor float32
}

// Character is the player-controlled body: a point mass on an infinite ground plane with a facing yaw.
// Grounded/airborne is derived from the position on every query and never stored.
// All state is owned by the frame loop; the implementation is not safe for concurrent use.
type Character interface {
	// Update advances the character by one tick.
	//
	// Parameters:
	//   - dt: elapsed time in seconds (the caller clamps this)
	//   - moveX: strafe input in [-1, 1]
	//   - moveY: forward input in [-1, 1]
	//   - cameraYaw: camera yaw in radians, used to build the world-space movement basis
	Update(dt, moveX, moveY, cameraYaw float32)

	// TryJump starts a jump when the character is grounded and not moving vertically.
	// Otherwise the call does nothing.
	TryJump()

	// Grounded reports whether the character is on (or below) the ground plane.
	//
	// Returns:
	//   - bool: true if grounded
	Grounded() bool

	// Position returns the world-space position.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// Velocity returns the velocity in units per second.
	//
	// Returns:
	//   - common.Vec3: the velocity
	Velocity() common.Vec3

	// Yaw returns the facing yaw in radians.
	//
	// Returns:
	//   - float32: the yaw
	Yaw() float32

	// GroundY returns the height of the ground plane.
	//
	// Returns:
	//   - float32: the ground height
	GroundY() float32
}

var _ Character = &characterImpl{}

// NewCharacter creates a Character standing at (0, groundY, 0) with the default tuning, then applies options.
//
// Parameters:
//   - options: functional options to override tuning or initial state
//
// Returns:
//   - Character: the new character
func NewCharacter(options ...CharacterBuilderOption) Character {
	c := &characterImpl{
		gravity:        -18,
		runSpeed:       5,
		jumpVelocity:   7.5,
		groundY:        1,
		turnRate:       12,
		airPolicy:      AirPolicyMomentumLock,
		airSpeedFactor: 0.6,
	}
	c.position = common.Vec3{0, c.groundY, 0}
	for _, opt := range options {
		opt(c)
	}
	if c.position[1] < c.groundY {
		c.position[1] = c.groundY
	}
	return c
}

func (c *characterImpl) Update(dt, moveX, moveY, cameraYaw float32) {
	grounded := c.Grounded()

	if grounded || c.airPolicy == AirPolicyFree {
		speed := c.runSpeed
		if !grounded {
			speed *= c.airSpeedFactor
		}
		c.velocity[0], c.velocity[2] = c.desiredVelocity(moveX, moveY, cameraYaw, speed)
	}

	c.velocity[1] += c.gravity * dt

	c.position[0] += c.velocity[0] * dt
	c.position[1] += c.velocity[1] * dt
	c.position[2] += c.velocity[2] * dt

	if c.position[1] < c.groundY {
		c.position[1] = c.groundY
		c.velocity[1] = 0
	}

	if math32.Hypot(c.velocity[0], c.velocity[2]) > facingMinSpeed {
		target := math32.Atan2(c.velocity[0], c.velocity[2])
		diff := common.WrapAngle(target - c.yaw)
		c.yaw += diff * min(c.turnRate*dt, 1)
	}
}

// desiredVelocity maps the local input onto the camera's ground-plane basis and scales it to speed.
// Forward is the direction the camera looks along, right is perpendicular to it.
func (c *characterImpl) desiredVelocity(moveX, moveY, cameraYaw, speed float32) (vx, vz float32) {
	sinYaw, cosYaw := math32.Sincos(cameraYaw)
	forwardX, forwardZ := -sinYaw, -cosYaw
	rightX, rightZ := cosYaw, -sinYaw

	dx := rightX*moveX + forwardX*moveY
	dz := rightZ*moveX + forwardZ*moveY
	l := math32.Hypot(dx, dz)
	if l == 0 {
		return 0, 0
	}
	return dx / l * speed, dz / l * speed
}

func (c *characterImpl) TryJump() {
	if c.Grounded() && math32.Abs(c.velocity[1]) < jumpMaxVerticalSpeed {
		c.velocity[1] = c.jumpVelocity
	}
}

func (c *characterImpl) Grounded() bool {
	return c.position[1]-c.groundY < groundEpsilon
}

func (c *characterImpl) Position() common.Vec3 {
	return c.position
}

func (c *characterImpl) Velocity() common.Vec3 {
	return c.velocity
}

func (c *characterImpl) Yaw() float32 {
	return c.yaw
}

func (c *characterImpl) GroundY() float32 {
	return c.groundY
}
