package main

import (
	"math"
	"math/rand"
)

// Node is one vertex of a snake's body chain, in world coordinates.
type Node struct {
	X float64
	Y float64
}

// Snake is a player's body chain plus its kinematic state. Invariants:
// len(Nodes) >= 1 while alive; len(Nodes) <= SnakeMaxNodes (Grow is a
// no-op past the cap); once IsDead is set the owning world removes the
// snake by end of the tick that killed it.
type Snake struct {
	Skin           int
	Speed          float64
	Nodes          []Node
	CurrentAngle   float64 // degrees
	RotateAngle    float64 // degrees, target for Rotate
	IsDead         bool
	Accelerate     bool
	AccelerateTime int // ticks spent accelerating since last auto-shorten
}

// NewSnake places the head uniformly at random within the playable
// rectangle inset by SnakeSpawnMargin from each edge, then appends
// length-1 further nodes stacked at the same point (spacing is 0 at
// spawn; they separate as the snake moves).
func NewSnake(length int, skin int, speed float64) *Snake {
	x := randRange(OffsetX+SnakeSpawnMargin, TrueMapWidth-SnakeSpawnMargin)
	y := randRange(OffsetY+SnakeSpawnMargin, TrueMapHeight-SnakeSpawnMargin)

	nodes := make([]Node, 0, length)
	nodes = append(nodes, Node{X: x, Y: y})
	for i := 1; i < length; i++ {
		last := nodes[len(nodes)-1]
		nodes = append(nodes, Node{X: last.X + SnakeNodeSpace, Y: last.Y + SnakeNodeSpace})
	}

	return &Snake{
		Skin:  skin,
		Speed: speed,
		Nodes: nodes,
	}
}

func randRange(low, high float64) float64 {
	return low + rand.Float64()*(high-low)
}

// Head returns the head node (index 0).
func (s *Snake) Head() Node {
	return s.Nodes[0]
}

// Grow appends a duplicate of the tail node, unless the snake is
// already at SnakeMaxNodes, in which case it is a no-op.
func (s *Snake) Grow() {
	if len(s.Nodes) >= SnakeMaxNodes {
		return
	}
	tail := s.Nodes[len(s.Nodes)-1]
	s.Nodes = append(s.Nodes, Node{X: tail.X, Y: tail.Y})
}

// Shorter pops the tail node, if any.
func (s *Snake) Shorter() {
	if len(s.Nodes) == 0 {
		return
	}
	s.Nodes = s.Nodes[:len(s.Nodes)-1]
}

// NewRotateAngle records the target heading for Rotate to converge toward.
func (s *Snake) NewRotateAngle(angle float64) {
	s.RotateAngle = angle
}

// Rotate converges CurrentAngle toward RotateAngle at SnakeRotateSpeed
// degrees per tick, saturating at the target. Optional per spec §4.B;
// the tick loop does not call it today (steering targets a world point
// directly rather than an incremental heading).
func (s *Snake) Rotate() {
	if s.RotateAngle > s.CurrentAngle {
		s.CurrentAngle = min(s.RotateAngle, s.CurrentAngle+SnakeRotateSpeed)
	} else {
		s.CurrentAngle = max(s.RotateAngle, s.CurrentAngle-SnakeRotateSpeed)
	}
}

// Step advances the snake one tick toward (targetX, targetY), using the
// window dimensions to find the steering vector relative to the window
// center. The kinematic model is selected by UpdatePlayerMethod.
func (s *Snake) Step(targetX, targetY, windowW, windowH float64) {
	switch UpdatePlayerMethod {
	case UpdatePlayerMethodRigid:
		s.stepRigid(targetX, targetY, windowW, windowH)
	default:
		s.stepSpring(targetX, targetY, windowW, windowH)
	}
}

// stepRigid is the discrete snake-walk model (method 1): every node i>0
// assumes the previous position of node i-1, and the head advances by
// the normalized steering vector scaled by Speed.
func (s *Snake) stepRigid(targetX, targetY, windowW, windowH float64) {
	n := len(s.Nodes)
	for i := n - 1; i >= 1; i-- {
		s.Nodes[i] = s.Nodes[i-1]
	}

	dx := targetX - windowW/2
	dy := targetY - windowH/2
	dist := dx*dx + dy*dy
	dist = math.Sqrt(dist)
	if dist == 0 {
		dist = 1.0
	}

	velX := (dx / dist) * s.Speed
	velY := (dy / dist) * s.Speed
	s.Nodes[0].X += velX
	s.Nodes[0].Y += velY
	clampNode(&s.Nodes[0])
}

// stepSpring is the distance-normalized spring-chain model (method 2):
// each node from tail to 1 closes the gap to its predecessor at a rate
// proportional to how stretched the link is, then the head advances by
// the steering vector scaled by Speed (and SnakeSpeedAccelerate while
// accelerating).
func (s *Snake) stepSpring(targetX, targetY, windowW, windowH float64) {
	n := len(s.Nodes)
	for i := n - 1; i >= 1; i-- {
		dx := s.Nodes[i-1].X - s.Nodes[i].X
		dy := s.Nodes[i-1].Y - s.Nodes[i].Y
		dist := math.Sqrt(dx*dx + dy*dy)
		nodeDist := dist / SnakeNodeInitialDistance

		speed := s.Speed * nodeDist
		if s.Accelerate {
			speed = SnakeSpeedAccelerate * s.Speed * nodeDist
		}

		guard := dist
		if guard == 0 {
			guard = 0.1
		}
		velX := (dx / guard) * speed
		velY := (dy / guard) * speed

		s.Nodes[i].X += velX
		s.Nodes[i].Y += velY
		clampNode(&s.Nodes[i])
	}

	dx := targetX - windowW/2
	dy := targetY - windowH/2
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		dist = 1.0
	}

	speedFactor := s.Speed
	if s.Accelerate {
		speedFactor = SnakeSpeedAccelerate * s.Speed
	}
	velX := (dx / dist) * speedFactor
	velY := (dy / dist) * speedFactor

	s.Nodes[0].X += velX
	s.Nodes[0].Y += velY
	clampNode(&s.Nodes[0])
}

// clampNode keeps a node's collision box [x-D/2,x+D/2]x[y-D/2,y+D/2]
// inside the playable rectangle, where D is the initial snake diameter.
func clampNode(n *Node) {
	half := SnakeInitialSize / 2
	if n.X-half < OffsetX {
		n.X = OffsetX + half
	}
	if n.Y-half < OffsetY {
		n.Y = OffsetY + half
	}
	if n.X+half > TrueMapWidth {
		n.X = TrueMapWidth - half
	}
	if n.Y+half > TrueMapHeight {
		n.Y = TrueMapHeight - half
	}
}
