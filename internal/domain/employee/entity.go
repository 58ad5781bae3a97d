package employee

type Employee struct {
	EmpID       string
	Name        string
	Designation string
	Section     string
	SubSection  string
	Category    string
	Grade       string
	GrossSalary float64
}

// Filter narrows employee listings; empty fields mean "all".
type Filter struct {
	Section    string
	SubSection string
	Category   string
}
