package catapultdb

type options struct {
	beamWidth     int
	catapults     bool
	trajectoryCap int
	reinjectCount int
}

func defaultOptions() options {
	return options{
		beamWidth: 128,
	}
}

// Option configures search defaults for a DB. Per-call parameters are
// derived from these at each Search.
type Option func(*options)

// WithBeamWidth sets the default candidate-frontier bound W. Larger values
// trade throughput for recall. W must be at least k at search time.
func WithBeamWidth(w int) Option {
	return func(o *options) {
		o.beamWidth = w
	}
}

// WithCatapults enables trajectory re-injection: when a beam step inserts
// nothing into the frontier, old trajectory points are offered back to the
// beam to escape local basins.
func WithCatapults(enabled bool) Option {
	return func(o *options) {
		o.catapults = enabled
	}
}

// WithTrajectoryCapacity sets the catapult ring capacity C. Zero keeps the
// default of 4x the beam width. The constant is empirical; tune per
// workload.
func WithTrajectoryCapacity(c int) Option {
	return func(o *options) {
		o.trajectoryCap = c
	}
}

// WithReinjectCount sets how many trajectory entries are offered per stall
// (R). Zero keeps the default of max(1, W/8). The constant is empirical;
// tune per workload.
func WithReinjectCount(r int) Option {
	return func(o *options) {
		o.reinjectCount = r
	}
}
