package models

// Role defines the account role of a portal user
type Role string

const (
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleCoordinator
}

// Course is the academic programme a placement student is enrolled in
type Course string

const (
	CourseBTech Course = "B.Tech"
	CourseBE    Course = "B.E"
	CourseMTech Course = "M.Tech"
	CourseME    Course = "M.E"
	CourseMCA   Course = "MCA"
	CourseMScCS Course = "M.Sc (CS)"
	CoursePhD   Course = "Ph.D"
	CourseBScIT Course = "B.Sc (IT)"
	CourseMScIT Course = "M.Sc (IT)"
	CourseBCA   Course = "BCA"
)

// Courses lists every accepted course
var Courses = []Course{
	CourseBTech, CourseBE, CourseMTech, CourseME, CourseMCA,
	CourseMScCS, CoursePhD, CourseBScIT, CourseMScIT, CourseBCA,
}

// Branch codes a listing may also target
var Branches = []string{"CSE", "ECE", "MECH", "CIVIL", "EEE"}

// IsCourse reports whether value names a known course
func IsCourse(value string) bool {
	for _, c := range Courses {
		if string(c) == value {
			return true
		}
	}
	return false
}

// IsStream reports whether value may appear in a listing's required streams.
// Streams are branch codes or course names.
func IsStream(value string) bool {
	for _, b := range Branches {
		if b == value {
			return true
		}
	}
	return IsCourse(value)
}

// DriveType is how a recruitment drive is conducted
type DriveType string

const (
	DriveCampus DriveType = "CAMPUS"
	DriveOnline DriveType = "ONLINE"
	DriveHybrid DriveType = "HYBRID"
)

// BatchYears are the graduating batches currently served
var BatchYears = []string{"2024", "2025", "2026"}

// ApplicationStatus tracks an application through the hiring rounds
type ApplicationStatus string

const (
	StatusApplied  ApplicationStatus = "APPLIED"
	StatusRound1   ApplicationStatus = "ROUND1"
	StatusRound2   ApplicationStatus = "ROUND2"
	StatusRound3   ApplicationStatus = "ROUND3"
	StatusSelected ApplicationStatus = "SELECTED"
	StatusRejected ApplicationStatus = "REJECTED"
)

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusRound1, StatusRound2, StatusRound3, StatusSelected, StatusRejected:
		return true
	}
	return false
}
