package roadmap

// Neutral is used for anything without an entry in the colour tables.
const Neutral = "#6B7280"

var statusColors = map[Status]string{
	StatusCompleted: "#10B981",
	StatusCurrent:   "#8B5CF6",
	StatusPlanned:   "#6B7280",
}

var kindColors = map[Kind]string{
	KindLearning: "#3B82F6",
	KindProject:  "#F59E0B",
}

var categoryColors = map[string]string{
	"Frontend":       "#3B82F6",
	"Backend":        "#EF4444",
	"Database":       "#F59E0B",
	"DevOps":         "#06B6D4",
	"Design":         "#EC4899",
	"Language":       "#8B5CF6",
	"Mobile":         "#6366F1",
	"Architecture":   "#84CC16",
	"AI/ML":          "#F43F5E",
	"Full-Stack App": "#10B981",
	"Financial App":  "#F97316",
	"AI Platform":    "#8B5CF6",
}

// Edge and label accents.
const (
	ProjectAccent  = "#F59E0B"
	LearningAccent = "#8B5CF6"

	projectEdgeStroke  = "rgba(245, 158, 11, 0.4)"
	learningEdgeStroke = "rgba(139, 92, 246, 0.3)"
	progressRingStroke = "rgba(245, 158, 11, 0.3)"
	labelTitleFill     = "rgba(255, 255, 255, 0.95)"
	warmParticle       = "rgba(245, 158, 11, 0.6)"
	coolParticle       = "rgba(139, 92, 246, 0.6)"
)

// StatusColor is the fill of a node marker.
func StatusColor(s Status) string { return lookupColor(statusColors, s) }

// KindColor is the outline of project markers.
func KindColor(k Kind) string { return lookupColor(kindColors, k) }

// CategoryColor is the outline of learning markers.
func CategoryColor(category string) string { return lookupColor(categoryColors, category) }

// OutlineColor picks the marker outline for n.
func OutlineColor(n Node) string {
	if n.IsProject() {
		return KindColor(n.Kind)
	}
	return CategoryColor(n.Category)
}

// AccentColor is the colour of the label detail line for n.
func AccentColor(n Node) string {
	if n.IsProject() {
		return ProjectAccent
	}
	return LearningAccent
}

func lookupColor[K comparable](table map[K]string, key K) string {
	if c, ok := table[key]; ok {
		return c
	}
	return Neutral
}
