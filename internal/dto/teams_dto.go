package dto

type CreateTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ManagerID   *string `json:"manager_id"`
}

type AddTeamMemberRequest struct {
	EmployeeID string `json:"employee_id"`
}
