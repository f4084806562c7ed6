package fnplot

import (
	"math"

	"fortio.org/log"
)

// Samples is the number of points PlotPoints produces for a range.
const Samples = 2000

// Point is a point on the curve of a function.
type Point struct {
	X, Y float64
}

// PlotPoints samples the function over the range (minX, maxX]. The step is
// (maxX-minX)/Samples, and the first point is at minX plus one step. Every
// declared variable is set to the x value of each point, so a function of
// several variables is sampled along the line where they are all equal.
// The first evaluation error aborts the pass and is returned without any
// points.
//
// An empty or infinite range gives no points. So does a range whose step is
// within a few multiples of the spacing of float64 values in it, such as
// (1e16, 1e16+2], where consecutive points could round to the same x.
func (f *Function) PlotPoints(minX, maxX float64) ([]Point, error) {
	if !(minX < maxX) {
		return nil, nil
	}
	step := (maxX - minX) / Samples
	if math.IsInf(step, 0) {
		log.Warnf("can't sample %s over (%g, %g]: range is infinite", f.name, minX, maxX)
		return nil, nil
	}
	m := math.Max(math.Abs(minX), math.Abs(maxX))
	// Rounding minX+i*step can move each point by up to about one spacing.
	if ulp := m - math.Nextafter(m, 0); step < 4*ulp {
		log.Warnf("can't sample %s over (%g, %g]: step %g is below float64 spacing %g", f.name, minX, maxX, step, ulp)
		return nil, nil
	}
	log.LogVf("sampling %s over (%g, %g]", f.name, minX, maxX)
	f.Seek(minX, step)
	points := make([]Point, 0, Samples)
	for i := 1; i <= Samples; i++ {
		// Compute x from the index rather than accumulating steps so that
		// rounding error doesn't change the number of points.
		f.x = minX + float64(i)*f.step
		y, err := f.At(f.x)
		if err != nil {
			log.LogVf("sampling %s stopped at x=%g: %v", f.name, f.x, err)
			return nil, err
		}
		points = append(points, Point{X: f.x, Y: y})
	}
	return points, nil
}

// Seek sets the sampling cursor and step used by Next.
func (f *Function) Seek(x, step float64) {
	f.x, f.step = x, step
}

// Next advances the sampling cursor by one step and evaluates the function
// there.
func (f *Function) Next() (Point, error) {
	f.x += f.step
	y, err := f.At(f.x)
	if err != nil {
		return Point{}, err
	}
	return Point{X: f.x, Y: y}, nil
}

// Cursor returns the current sampling position and step.
func (f *Function) Cursor() (x, step float64) {
	return f.x, f.step
}
