package orientation

import (
	"context"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/logger"
)

// GyroSource reads an SDL gyroscope. Opening the sensor is the permission
// step: a device without one reports ErrNoSensor.
type GyroSource struct {
	integrator *Integrator
	sensor     *sdl.Sensor
	id         int32
}

// NewGyroSource creates a closed source.
func NewGyroSource(sensitivity float32) *GyroSource {
	return &GyroSource{integrator: NewIntegrator(DefaultAngles, sensitivity)}
}

// RequestPermission opens the first gyroscope SDL reports.
func (g *GyroSource) RequestPermission(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.sensor != nil {
		return nil
	}

	for i := 0; i < sdl.NumSensors(); i++ {
		if sdl.SensorGetDeviceType(i) != sdl.SENSOR_GYRO {
			continue
		}
		s := sdl.SensorOpen(i)
		if s == nil {
			return fmt.Errorf("opening sensor %d: %w", i, ErrPermissionDenied)
		}
		g.sensor = s
		g.id = int32(s.GetInstanceID())
		g.integrator.Reset(DefaultAngles)

		logger.Info("gyroscope opened",
			zap.String("name", sdl.SensorGetDeviceName(i)),
			zap.Int32("id", g.id))
		return nil
	}
	return ErrNoSensor
}

// Handle integrates a sensor event. It reports false for events from
// other sensors or while closed.
func (g *GyroSource) Handle(which int32, data [3]float32, tick uint32) (Angles, bool) {
	if g.sensor == nil || which != g.id {
		return Angles{}, false
	}
	return g.integrator.Add(data, tick), true
}

// Close releases the sensor.
func (g *GyroSource) Close() error {
	if g.sensor != nil {
		g.sensor.Close()
		g.sensor = nil
	}
	return nil
}
