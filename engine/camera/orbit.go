package camera

import (
	"github.com/Carmen-Shannon/oxy-meadow/common"
	"github.com/chewxy/math32"
)

// orbit places an eye on a sphere around a target point.
// Azimuth rotates about +Y starting from +Z; elevation lifts the eye toward +Y.
// Neither angle is clamped here: limits belong to whoever produces them.
type orbit struct {
	target    common.Vec3
	position  common.Vec3
	radius    float32
	azimuth   float32
	elevation float32
}

// set updates the target and angles and recomputes the eye position.
func (o *orbit) set(target common.Vec3, azimuth, elevation float32) {
	o.target = target
	o.azimuth = azimuth
	o.elevation = elevation
	o.updatePosition()
}

// updatePosition recomputes the eye position from spherical coordinates.
func (o *orbit) updatePosition() {
	sinElev, cosElev := math32.Sincos(o.elevation)
	sinAzim, cosAzim := math32.Sincos(o.azimuth)

	o.position[0] = o.target[0] + o.radius*cosElev*sinAzim
	o.position[1] = o.target[1] + o.radius*sinElev
	o.position[2] = o.target[2] + o.radius*cosElev*cosAzim
}
