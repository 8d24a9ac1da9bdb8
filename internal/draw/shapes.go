package draw

import "github.com/tomz197/duckhunter/internal/object"

// DrawInstance paints one sprite instance. Unknown sprites draw nothing.
func DrawInstance(c *Canvas, in object.Instance) {
	w, h := in.Sprite.Size()
	x, y := float64(in.X), float64(in.Y)
	fw, fh := float64(w), float64(h)

	switch in.Sprite {
	case object.SpriteDuckLeft, object.SpriteDuckRight,
		object.SpriteDuckUpLeft, object.SpriteDuckUpRight:
		drawFlyingDuck(c, in, x, y, fw, fh)
	case object.SpriteDuckShot:
		drawShotDuck(c, x, y, fw, fh)
	case object.SpriteDuckFalling:
		drawFallingDuck(c, in.Frame, x, y, fw, fh)
	case object.SpriteCloud:
		drawCloud(c, x, y, fw, fh)
	case object.SpriteBlood0, object.SpriteBlood1, object.SpriteBlood2:
		c.FillEllipse(x+fw/2, y+fh/2, fw/2, fh/2, ColorBlood)
	case object.SpriteHole0, object.SpriteHole1, object.SpriteHole2:
		c.FillEllipse(x+fw/2, y+fh/2, fw/2, fh/2, ColorHole)
	}
}

func facesRight(s object.Sprite) bool {
	return s == object.SpriteDuckRight || s == object.SpriteDuckUpRight
}

func drawFlyingDuck(c *Canvas, in object.Instance, x, y, w, h float64) {
	right := facesRight(in.Sprite)
	climbing := in.Sprite == object.SpriteDuckUpLeft || in.Sprite == object.SpriteDuckUpRight

	bodyX := x + w*0.45
	headX := x + w*0.18
	beakTip := x
	if right {
		bodyX = x + w*0.55
		headX = x + w*0.82
		beakTip = x + w
	}
	headY := y + h*0.35
	if climbing {
		headY = y + h*0.2
	}

	c.FillEllipse(bodyX, y+h*0.6, w*0.32, h*0.2, ColorDuckBody)
	c.FillEllipse(headX, headY, w*0.13, h*0.13, ColorDuckHead)
	c.FillPolygon([]Point{
		{X: headX, Y: headY - h*0.04},
		{X: beakTip, Y: headY + h*0.02},
		{X: headX, Y: headY + h*0.08},
	}, ColorDuckBeak)
	c.Set(int(headX), int(headY-h*0.04), ColorDuckEye)

	// Wings flap on a four frame cycle.
	wingY := y + h*0.15
	if (in.Frame/4)%2 == 1 {
		wingY = y + h*0.75
	}
	c.FillPolygon([]Point{
		{X: bodyX - w*0.15, Y: y + h*0.55},
		{X: bodyX + w*0.1, Y: y + h*0.55},
		{X: bodyX, Y: wingY},
	}, ColorDuckWing)
}

func drawShotDuck(c *Canvas, x, y, w, h float64) {
	c.FillEllipse(x+w/2, y+h*0.55, w*0.3, h*0.3, ColorDuckBody)
	c.FillEllipse(x+w/2, y+h*0.2, w*0.13, h*0.14, ColorDuckHead)
	c.FillEllipse(x+w*0.3, y+h*0.5, w*0.12, h*0.2, ColorDuckWing)
	c.FillEllipse(x+w*0.7, y+h*0.5, w*0.12, h*0.2, ColorDuckWing)
	c.DrawLine(Point{X: x + w*0.42, Y: y + h*0.12}, Point{X: x + w*0.58, Y: y + h*0.28}, ColorDuckShot)
	c.DrawLine(Point{X: x + w*0.58, Y: y + h*0.12}, Point{X: x + w*0.42, Y: y + h*0.28}, ColorDuckShot)
}

func drawFallingDuck(c *Canvas, frame int, x, y, w, h float64) {
	// The body spins around its centre as the frames advance.
	sway := w * 0.12
	if frame%2 == 1 {
		sway = -sway
	}
	c.FillEllipse(x+w/2, y+h*0.4, w*0.2, h*0.3, ColorDuckBody)
	c.FillEllipse(x+w/2+sway, y+h*0.8, w*0.13, h*0.13, ColorDuckHead)
	c.FillPolygon([]Point{
		{X: x + w/2 + sway - w*0.04, Y: y + h*0.88},
		{X: x + w/2 + sway, Y: y + h},
		{X: x + w/2 + sway + w*0.04, Y: y + h*0.88},
	}, ColorDuckBeak)
}

func drawCloud(c *Canvas, x, y, w, h float64) {
	c.FillEllipse(x+w*0.3, y+h*0.6, w*0.25, h*0.3, ColorCloudEdge)
	c.FillEllipse(x+w*0.7, y+h*0.6, w*0.25, h*0.3, ColorCloudEdge)
	c.FillEllipse(x+w*0.5, y+h*0.4, w*0.3, h*0.4, ColorCloud)
}
