package rigid2d

import "gopkg.in/yaml.v3"

// BodySpec is one body's creation parameters, the host-facing shape
// scenario.go (de)serializes: a world is persisted by saving these
// parameters and replaying the creates, not by any on-disk world format.
type BodySpec struct {
	Kind        int       `yaml:"kind"`
	Shape       int       `yaml:"shape"`
	P1          float64   `yaml:"p1,omitempty"`
	P2          float64   `yaml:"p2,omitempty"`
	Verts       []float64 `yaml:"verts,omitempty"`
	X           float64   `yaml:"x"`
	Y           float64   `yaml:"y"`
	Mass        float64   `yaml:"mass"`
	Restitution float64   `yaml:"restitution"`
	Friction    float64   `yaml:"friction"`
	Layer       uint16    `yaml:"layer"`
	Mask        uint16    `yaml:"mask"`
}

// JointSpec is one joint's creation parameters.
type JointSpec struct {
	Kind         string  `yaml:"kind"` // "distance", "soft-distance", "revolute", "soft-revolute"
	A            int     `yaml:"a"`
	B            int     `yaml:"b"`
	Distance     float64 `yaml:"distance,omitempty"`
	PX           float64 `yaml:"px,omitempty"`
	PY           float64 `yaml:"py,omitempty"`
	FrequencyHz  float64 `yaml:"frequency_hz,omitempty"`
	DampingRatio float64 `yaml:"damping_ratio,omitempty"`
}

// Scenario is a gravity setting plus the bodies and joints to recreate.
type Scenario struct {
	GravityX float64     `yaml:"gravity_x"`
	GravityY float64     `yaml:"gravity_y"`
	Bodies   []BodySpec  `yaml:"bodies"`
	Joints   []JointSpec `yaml:"joints"`
}

// LoadScenario parses a YAML document into a Scenario.
func LoadScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// SaveScenario serializes s to YAML.
func SaveScenario(s Scenario) ([]byte, error) {
	return yaml.Marshal(s)
}

// Apply creates a fresh world from s and replays every body and joint
// in order, returning the body ids in creation order. Joint specs
// reference bodies by their index into s.Bodies; Apply maps each index
// to the id the body received, since ids are not known ahead of
// creation.
func (s Scenario) Apply() []float64 {
	CreateWorld(s.GravityX, s.GravityY)
	ids := make([]float64, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Shape == ShapeCircle || b.Shape == ShapeAABB {
			ids[i] = CreateBody(b.Kind, b.Shape, b.P1, b.P2, b.X, b.Y, b.Mass, b.Restitution, b.Friction, b.Layer, b.Mask)
		} else {
			ids[i] = CreatePolygonBody(b.Kind, b.Verts, b.X, b.Y, b.Mass, b.Restitution, b.Friction, b.Layer, b.Mask)
		}
	}
	for _, j := range s.Joints {
		a, b := ids[j.A], ids[j.B]
		switch j.Kind {
		case "distance":
			CreateDistanceJoint(a, b, j.Distance)
		case "soft-distance":
			CreateSoftDistanceJoint(a, b, j.Distance, j.FrequencyHz, j.DampingRatio)
		case "revolute":
			CreateRevoluteJoint(a, b, j.PX, j.PY)
		case "soft-revolute":
			CreateSoftRevoluteJoint(a, b, j.PX, j.PY, j.FrequencyHz, j.DampingRatio)
		}
	}
	return ids
}
