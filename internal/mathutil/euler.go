package mathutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// EulerOrder names the intrinsic rotation sequence. For order "ABC" the
// resulting matrix is R_A · R_B · R_C.
type EulerOrder string

const (
	OrderXYZ EulerOrder = "XYZ"
	OrderYXZ EulerOrder = "YXZ"
	OrderZXY EulerOrder = "ZXY"
	OrderZYX EulerOrder = "ZYX"
	OrderYZX EulerOrder = "YZX"
	OrderXZY EulerOrder = "XZY"
)

// ErrEulerOrder is returned for an unknown rotation sequence.
var ErrEulerOrder = errors.New("unknown euler order")

// EulerOrders lists every supported sequence.
var EulerOrders = []EulerOrder{OrderXYZ, OrderYXZ, OrderZXY, OrderZYX, OrderYZX, OrderXZY}

// ParseEulerOrder accepts an order name in any case. Empty means XYZ.
func ParseEulerOrder(s string) (EulerOrder, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return OrderXYZ, nil
	}
	for _, o := range EulerOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrEulerOrder, s)
}

// EulerToMat3 builds a rotation from angles (radians) about X, Y and Z,
// composed in the given order.
func EulerToMat3(order EulerOrder, x, y, z float64) (Mat3, error) {
	rx, ry, rz := RotX(x), RotY(y), RotZ(z)
	var a, b, c Mat3
	switch order {
	case OrderXYZ:
		a, b, c = rx, ry, rz
	case OrderYXZ:
		a, b, c = ry, rx, rz
	case OrderZXY:
		a, b, c = rz, rx, ry
	case OrderZYX:
		a, b, c = rz, ry, rx
	case OrderYZX:
		a, b, c = ry, rz, rx
	case OrderXZY:
		a, b, c = rx, rz, ry
	default:
		return Mat3{}, fmt.Errorf("%w: %q", ErrEulerOrder, order)
	}
	return Mat3Mul(Mat3Mul(a, b), c), nil
}

// gimbalLimit is the |sin| beyond which the middle angle is treated as ±90°.
const gimbalLimit = 0.9999999

// Mat3ToEuler recovers (x, y, z) angles in radians for the given order. At
// gimbal lock the third angle in the sequence is set to zero.
func Mat3ToEuler(order EulerOrder, m Mat3) (x, y, z float64, err error) {
	m11, m12, m13 := m[0], m[1], m[2]
	m21, m22, m23 := m[3], m[4], m[5]
	m31, m32, m33 := m[6], m[7], m[8]

	switch order {
	case OrderXYZ:
		y = math.Asin(clamp1(m13))
		if math.Abs(m13) < gimbalLimit {
			x = math.Atan2(-m23, m33)
			z = math.Atan2(-m12, m11)
		} else {
			x = math.Atan2(m32, m22)
		}
	case OrderYXZ:
		x = math.Asin(-clamp1(m23))
		if math.Abs(m23) < gimbalLimit {
			y = math.Atan2(m13, m33)
			z = math.Atan2(m21, m22)
		} else {
			y = math.Atan2(-m31, m11)
		}
	case OrderZXY:
		x = math.Asin(clamp1(m32))
		if math.Abs(m32) < gimbalLimit {
			y = math.Atan2(-m31, m33)
			z = math.Atan2(-m12, m22)
		} else {
			z = math.Atan2(m21, m11)
		}
	case OrderZYX:
		y = math.Asin(-clamp1(m31))
		if math.Abs(m31) < gimbalLimit {
			x = math.Atan2(m32, m33)
			z = math.Atan2(m21, m11)
		} else {
			z = math.Atan2(-m12, m22)
		}
	case OrderYZX:
		z = math.Asin(clamp1(m21))
		if math.Abs(m21) < gimbalLimit {
			x = math.Atan2(-m23, m22)
			y = math.Atan2(-m31, m11)
		} else {
			y = math.Atan2(m13, m33)
		}
	case OrderXZY:
		z = math.Asin(-clamp1(m12))
		if math.Abs(m12) < gimbalLimit {
			x = math.Atan2(m32, m22)
			y = math.Atan2(m13, m11)
		} else {
			x = math.Atan2(-m23, m33)
		}
	default:
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrEulerOrder, order)
	}
	return x, y, z, nil
}

func clamp1(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
