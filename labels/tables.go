package labels

import "sort"

// Lookup is an immutable code → label table. The zero value maps nothing.
type Lookup struct {
	name     string
	labels   map[int]string
	fallback string
	total    bool
}

func newLookup(name string, labels map[int]string) Lookup {
	return Lookup{name: name, labels: labels}
}

// withFallback returns a copy of l that answers fallback for unknown codes.
func (l Lookup) withFallback(fallback string) Lookup {
	l.fallback, l.total = fallback, true
	return l
}

// Label returns the label for code. For an unknown code it returns the fallback if the table has
// one, otherwise "", false.
func (l Lookup) Label(code int) (string, bool) {
	if lbl, ok := l.labels[code]; ok {
		return lbl, true
	}

	if l.total {
		return l.fallback, true
	}

	return "", false
}

// Known reports whether code is in the table proper.
func (l Lookup) Known(code int) bool {
	_, ok := l.labels[code]
	return ok
}

// Fallback is the label for unknown or missing codes, if any.
func (l Lookup) Fallback() (string, bool) {
	return l.fallback, l.total
}

// Codes returns the codes of the table in increasing order.
func (l Lookup) Codes() []int {
	codes := make([]int, 0, len(l.labels))
	for c := range l.labels {
		codes = append(codes, c)
	}

	sort.Ints(codes)

	return codes
}

func (l Lookup) Len() int {
	return len(l.labels)
}

func (l Lookup) Name() string {
	return l.name
}

// *********** Tables ***********

const Unknown = "Unknown"

var (
	states = newLookup("UF", map[int]string{
		11: "Rondonia", 12: "Acre", 13: "Amazonas", 14: "Roraima", 15: "Para", 16: "Amapa", 17: "Tocantins",
		21: "Maranhao", 22: "Piaui", 23: "Ceara", 24: "Rio Grande do Norte", 25: "Paraiba", 26: "Pernambuco",
		27: "Alagoas", 28: "Sergipe", 29: "Bahia",
		31: "Minas Gerais", 32: "Espirito Santo", 33: "Rio de Janeiro", 35: "Sao Paulo",
		41: "Parana", 42: "Santa Catarina", 43: "Rio Grande do Sul",
		50: "Mato Grosso do Sul", 51: "Mato Grosso", 52: "Goias", 53: "Distrito Federal",
	}).withFallback(Unknown)

	gender = newLookup("V2007", map[int]string{1: "Male", 2: "Female"})

	laborForce = newLookup("VD4001", map[int]string{1: "Employed", 2: "Unemployed", 3: "Out of Labor Force"})

	employmentType = newLookup("VD4002", map[int]string{
		1: "Employee with formal contract",
		2: "Employee without formal contract",
		3: "Military or statutory public servant",
		4: "Employer",
		5: "Self-employed",
		6: "Unpaid worker",
		7: "Domestic worker employer family member",
		8: "Domestic worker",
	})

	education = newLookup("VD3004", map[int]string{
		1: "No schooling",
		2: "Incomplete Elementary/High School",
		3: "Complete High School/Incomplete College",
		4: "Complete College/Higher",
	})

	sector = newLookup("VD4008", map[int]string{
		1:  "Agriculture, Livestock, Forestry, Fishing, and Aquaculture",
		2:  "Industry",
		3:  "Construction",
		4:  "Trade, Repair of motor vehicles and motorcycles",
		5:  "Transportation, storage and mail",
		6:  "Accommodation and food service",
		7:  "Information, communication, financial, real estate and professional activities",
		8:  "Public Administration, defense, social security, education, human health and social services",
		9:  "Domestic services",
		10: "Other services",
	})
)

// The maps behind these are never written after package init; callers only get read access.

func States() Lookup         { return states }
func Gender() Lookup         { return gender }
func LaborForce() Lookup     { return laborForce }
func EmploymentType() Lookup { return employmentType }
func Education() Lookup      { return education }
func Sector() Lookup         { return sector }
