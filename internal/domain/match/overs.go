package match

import (
	"fmt"
	"math"
)

// BallsPerOver is the number of legal deliveries in one over.
const BallsPerOver = 6

// Overs counts legal deliveries as completed overs plus balls into the current over.
// Balls is always in [0, BallsPerOver-1].
type Overs struct {
	Whole int
	Balls int
}

// OversFromBalls converts a legal ball count into overs.
func OversFromBalls(balls int) Overs {
	if balls <= 0 {
		return Overs{}
	}
	return Overs{Whole: balls / BallsPerOver, Balls: balls % BallsPerOver}
}

// AddBall returns the overs after one more legal delivery.
func (o Overs) AddBall() Overs {
	next := Overs{Whole: o.Whole, Balls: o.Balls + 1}
	if next.Balls >= BallsPerOver {
		next.Whole++
		next.Balls = 0
	}
	return next
}

func (o Overs) TotalBalls() int {
	return o.Whole*BallsPerOver + o.Balls
}

func (o Overs) IsZero() bool {
	return o.Whole == 0 && o.Balls == 0
}

// Decimal is the scorebook encoding where 2.3 means two overs and three balls.
// It is not a true fraction of overs.
func (o Overs) Decimal() float64 {
	return math.Round((float64(o.Whole)+float64(o.Balls)/10)*10) / 10
}

// TrueOvers is the fractional number of overs bowled.
func (o Overs) TrueOvers() float64 {
	return float64(o.Whole) + float64(o.Balls)/BallsPerOver
}

func (o Overs) String() string {
	return fmt.Sprintf("%d.%d", o.Whole, o.Balls)
}
