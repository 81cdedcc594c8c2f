package domain

// Sentinel owner and partition keys. These are reserved and must never
// collide with a real CRM user name.
const (
	OwnerUnassigned = "Unassigned"
	NameUnknown     = "Unknown"

	EmptyDealsKey = "No Deals"
	EmptyLeadsKey = "No Leads"
	EmptyTasksKey = "No Tasks"
	EmptyNotesKey = "No Notes"
	ErrorKey      = "Error"
)

// Owned is implemented by every CRM record type that carries an owner,
// the partition key for the dashboard views.
type Owned interface {
	Owner() string
}

type Deal struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	AccountName  string   `json:"account_name"`
	OwnerName    string   `json:"owner_name"`
	Stage        string   `json:"stage"`
	Amount       *float64 `json:"amount"`
	ClosingDate  string   `json:"closing_date"`
	ServiceLine  string   `json:"service_line"`
	Accelerators string   `json:"accelerators"`
	Tags         []string `json:"tags"`
	CreatedTime  string   `json:"created_time"`
	ModifiedTime string   `json:"modified_time"`
}

func (d Deal) Owner() string { return d.OwnerName }

type Lead struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Company      string   `json:"company"`
	OwnerName    string   `json:"owner_name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Mobile       string   `json:"mobile"`
	Status       string   `json:"status"`
	Source       string   `json:"source"`
	Industry     string   `json:"industry"`
	Tags         []string `json:"tags"`
	CreatedTime  string   `json:"created_time"`
	ModifiedTime string   `json:"modified_time"`
}

func (l Lead) Owner() string { return l.OwnerName }

type Task struct {
	ID           string `json:"id"`
	Subject      string `json:"subject"`
	OwnerName    string `json:"owner_name"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	DueDate      string `json:"due_date"`
	StartDate    string `json:"start_date"`
	RelatedTo    string `json:"related_to"`
	Description  string `json:"description"`
	CreatedTime  string `json:"created_time"`
	ModifiedTime string `json:"modified_time"`
}

func (t Task) Owner() string { return t.OwnerName }

type Note struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	OwnerName    string `json:"owner_name"`
	ParentModule string `json:"parent_module"`
	ParentRecord string `json:"parent_record"`
	CreatedTime  string `json:"created_time"`
	ModifiedTime string `json:"modified_time"`
}

func (n Note) Owner() string { return n.OwnerName }
