package api

// Role is a user account role. The backend owns the closed set.
type Role string

const (
	RoleUser     Role = "USER"
	RoleEmployer Role = "EMPLOYER"
	RoleAdmin    Role = "ADMIN"
)

// ArticleStatus is the moderation lifecycle of a job article
type ArticleStatus string

const (
	ArticlePending  ArticleStatus = "PENDING"
	ArticleApproved ArticleStatus = "APPROVED"
	ArticleRejected ArticleStatus = "REJECTED"
	ArticleClosed   ArticleStatus = "CLOSED"
)

// ApplicantStatus is the lifecycle of one application
type ApplicantStatus string

const (
	ApplicantSubmitted ApplicantStatus = "SUBMITTED"
	ApplicantAccepted  ApplicantStatus = "ACCEPTED"
	ApplicantDeclined  ApplicantStatus = "DECLINED"
)

// TokenPair is the credential pair returned by login and refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiredIn    int64  `json:"expiredIn"`
}

// Tag is a named lookup value (industry, job level, working model, skill)
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserInfo is the signed-in user's profile
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Gender    bool   `json:"gender"`
	Birth     string `json:"birth"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      Role   `json:"role"`
	Skills    []Tag  `json:"skills,omitempty"`
}

// UpdateUserPayload is the profile-update request body
type UpdateUserPayload struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Birth    string `json:"birth"`
	Gender   bool   `json:"gender"`
}

// RegisterPayload is the registration request body
type RegisterPayload struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
	Birth    string `json:"birth"`
}

// Company is an employer organization
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// CompanyPayload is the create/update request body for companies
type CompanyPayload struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Article is a job posting. Salary bounds are nullable: the backend allows
// open-ended ranges.
type Article struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Requirement string        `json:"requirement"`
	SalaryMin   *int64        `json:"salaryMin"`
	SalaryMax   *int64        `json:"salaryMax"`
	DueDate     string        `json:"dueDate"`
	Status      ArticleStatus `json:"status"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Company     *Company      `json:"company,omitempty"`

	Industries    []Tag `json:"industries,omitempty"`
	JobLevels     []Tag `json:"jobLevels,omitempty"`
	WorkingModels []Tag `json:"workingModels,omitempty"`
	Skills        []Tag `json:"skills,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
}

// ArticlePayload is the JSON part of the multipart article create/update
// request
type ArticlePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
	SalaryMin   *int64 `json:"salaryMin"`
	SalaryMax   *int64 `json:"salaryMax"`
	DueDate     string `json:"dueDate"`

	IndustryIDs     []int64 `json:"industryIds,omitempty"`
	JobLevelIDs     []int64 `json:"jobLevelIds,omitempty"`
	WorkingModelIDs []int64 `json:"workingModelIds,omitempty"`
	SkillIDs        []int64 `json:"skillIds,omitempty"`
}

// Document is an uploaded attachment on an application
type Document struct {
	ID       int64  `json:"id"`
	FileName string `json:"fileName"`
	URL      string `json:"url,omitempty"`
}

// MatchScore is the server-computed breakdown scoring an applicant against
// an article's requirements. Read-only on the client.
type MatchScore struct {
	Overall    float64 `json:"overall"`
	Structure  float64 `json:"structure"`
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

// Applicant is one user's application against one article
type Applicant struct {
	ID          int64           `json:"id"`
	FullName    string          `json:"fullName"`
	Phone       string          `json:"phone"`
	CoverLetter string          `json:"coverLetter,omitempty"`
	ArticleID   int64           `json:"articleId"`
	Article     *Article        `json:"article,omitempty"`
	Status      ApplicantStatus `json:"status"`
	Documents   []Document      `json:"documents,omitempty"`
	MatchScore  *MatchScore     `json:"matchScore,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

// ApplicantPayload is the JSON part of the multipart application request
type ApplicantPayload struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"coverLetter,omitempty"`
	ArticleID   int64  `json:"articleId"`
}

// Notification is a per-user event record for a new article from a followed
// company
type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	ArticleID int64  `json:"articleId"`
	CompanyID int64  `json:"companyId,omitempty"`
	Viewed    bool   `json:"viewed"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// User is an account row in the admin user listing
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	Locked   bool   `json:"locked"`
}

// CountByDate is a dashboard datapoint
type CountByDate struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// CountByCompany is a dashboard datapoint
type CountByCompany struct {
	CompanyID   int64  `json:"companyId"`
	CompanyName string `json:"companyName"`
	Count       int64  `json:"count"`
}

// Upload is an in-memory file part for multipart requests. Content is held
// in memory so the request can be replayed after a token refresh.
type Upload struct {
	FileName string
	Content  []byte
}
