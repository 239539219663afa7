package drive_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pwasik/fuzzdrive/internal/drive"
	"github.com/pwasik/fuzzdrive/internal/fuzzy"
	"github.com/pwasik/fuzzdrive/internal/vehicle"
)

var _ = Describe("Loop", func() {
	var (
		controller *fuzzy.Controller
		car        *vehicle.Car
		loop       *drive.Loop
	)

	BeforeEach(func() {
		controller = fuzzy.Default()
		car = vehicle.New()
		loop = drive.NewLoop(drive.Fuzzy{Controller: controller}, car, 20.0)
	})

	Describe("Run", func() {
		It("rejects a non-positive timestep", func() {
			_, err := loop.Run(context.Background(), drive.Config{Dt: 0, Duration: 1})
			Expect(err).To(MatchError(ContainSubstring("dt must be positive")))
		})

		It("rejects a non-positive duration", func() {
			_, err := loop.Run(context.Background(), drive.Config{Dt: 0.1, Duration: -1})
			Expect(err).To(MatchError(ContainSubstring("duration must be positive")))
		})

		It("records one sample per tick", func() {
			result, err := loop.Run(context.Background(), drive.Config{Dt: 0.1, Duration: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Samples).To(HaveLen(50))
			Expect(result.Samples[0].Time).To(BeNumerically("~", 0.1, 1e-9))
			Expect(result.Samples[49].Time).To(BeNumerically("~", 5.0, 1e-9))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			result, err := loop.Run(ctx, drive.Config{Dt: 0.1, Duration: 10})
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.Samples).To(BeEmpty())
		})
	})

	Describe("closing the loop on the fuzzy controller", func() {
		It("brings the car to the target speed within 8 simulated seconds", func() {
			var speed float64
			for i := 0; i < 80; i++ {
				s, err := loop.Step(0.1)
				Expect(err).NotTo(HaveOccurred())
				speed = s.Speed
			}
			Expect(speed).To(BeNumerically("~", 20.0, 2.0))

			// and stays there
			for i := 0; i < 120; i++ {
				s, err := loop.Step(0.1)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Speed).To(BeNumerically("~", 20.0, 2.0))
			}
		})

		It("feeds the controller the previous tick's acceleration", func() {
			s1, err := loop.Step(0.1)
			Expect(err).NotTo(HaveOccurred())

			// First tick: the car starts at rest with zero acceleration,
			// so the controller saw (target, 0).
			Expect(s1.SpeedError).To(Equal(20.0))
			Expect(s1.Throttle).To(Equal(controller.Compute(20, 0)))

			s2, err := loop.Step(0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s2.Throttle).To(Equal(controller.Compute(s2.Target-s1.Speed, s1.Acceleration)))
		})
	})

	Describe("manual mode", func() {
		It("holds the operator's throttle setting", func() {
			manual := drive.NewManual(50)
			loop.SetSource(manual)

			var last drive.Sample
			for i := 0; i < 2000; i++ {
				s, err := loop.Step(0.1)
				Expect(err).NotTo(HaveOccurred())
				last = s
			}
			Expect(last.Throttle).To(Equal(50.0))
			Expect(last.Speed).To(BeNumerically("~", car.MaxSpeed(50), 0.05))
		})
	})

	Describe("target profiles", func() {
		It("tracks a distance-dependent target", func() {
			loop.SetTargetFunc(func(distance float64) float64 {
				if distance < 100 {
					return 10
				}
				return 25
			})

			s, err := loop.Step(0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Target).To(Equal(10.0))

			for i := 0; i < 600; i++ {
				s, err = loop.Step(0.1)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(s.Target).To(Equal(25.0))
			Expect(s.Speed).To(BeNumerically("~", 25.0, 2.5))
		})
	})

	Describe("metrics and observers", func() {
		It("reports metric values in the result", func() {
			m := &countingMetric{}
			loop.AddMetric(m)

			result, err := loop.Run(context.Background(), drive.Config{Dt: 0.1, Duration: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics).To(HaveKeyWithValue("ticks", 20.0))
		})

		It("notifies observers every tick", func() {
			var seen []drive.Sample
			loop.AddObserver(observerFunc(func(s drive.Sample) { seen = append(seen, s) }))

			_, err := loop.Run(context.Background(), drive.Config{Dt: 0.1, Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(HaveLen(10))
		})
	})

	Describe("Reset", func() {
		It("returns the car and clock to zero", func() {
			for i := 0; i < 30; i++ {
				_, err := loop.Step(0.1)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(loop.Time()).To(BeNumerically(">", 0))

			loop.Reset()
			Expect(loop.Time()).To(BeZero())
			Expect(car.State()).To(Equal(vehicle.State{}))

			loop.Reset()
			Expect(car.State()).To(Equal(vehicle.State{}))
		})
	})
})

type countingMetric struct {
	n int
}

func (m *countingMetric) Name() string           { return "ticks" }
func (m *countingMetric) Observe(s drive.Sample) { m.n++ }
func (m *countingMetric) Value() float64         { return float64(m.n) }
func (m *countingMetric) Reset()                 { m.n = 0 }

type observerFunc func(drive.Sample)

func (f observerFunc) OnTick(s drive.Sample) { f(s) }

var _ = Describe("Fuzzy source", func() {
	It("matches the controller output", func() {
		c := fuzzy.Default()
		src := drive.Fuzzy{Controller: c}
		for _, in := range [][2]float64{{0, 0}, {12, -3}, {-20, 5}} {
			Expect(src.Throttle(in[0], in[1])).To(Equal(c.Compute(in[0], in[1])))
		}
	})

	It("never emits NaN across the input range", func() {
		src := drive.Fuzzy{Controller: fuzzy.Default()}
		for e := -35.0; e <= 35; e += 2.5 {
			for a := -12.0; a <= 12; a += 1.5 {
				Expect(math.IsNaN(src.Throttle(e, a))).To(BeFalse())
			}
		}
	})
})
