package zoho

import (
	"github.com/optisale/optisale/pkg/domain"
)

// Raw record schemas. The json tags are the upstream-to-internal field
// mapping; the normalize method on each applies the per-field defaults.
// Adding a field or entity kind is a change here, not new fetch logic.

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

type rawDeal struct {
	ID           string             `json:"id"`
	DealName     string             `json:"Deal_Name"`
	AccountName  domain.Reference   `json:"Account_Name"`
	Owner        domain.Reference   `json:"Owner"`
	Stage        string             `json:"Stage"`
	Amount       *float64           `json:"Amount"`
	ClosingDate  string             `json:"Closing_Date"`
	ServiceLine  string             `json:"Service_Line"`
	Accelerators string             `json:"Accelerators_or_Personalized_Service"`
	Tags         []domain.Reference `json:"Tag"`
	CreatedTime  string             `json:"Created_Time"`
	ModifiedTime string             `json:"Modified_Time"`
}

func (r rawDeal) normalize() domain.Deal {
	return domain.Deal{
		ID:           r.ID,
		Name:         withDefault(r.DealName, "Unnamed Deal"),
		AccountName:  r.AccountName.DisplayName(domain.NameUnknown),
		OwnerName:    r.Owner.DisplayName(domain.OwnerUnassigned),
		Stage:        withDefault(r.Stage, domain.NameUnknown),
		Amount:       r.Amount,
		ClosingDate:  withDefault(r.ClosingDate, "Not Set"),
		ServiceLine:  withDefault(r.ServiceLine, "Not Specified"),
		Accelerators: withDefault(r.Accelerators, "None"),
		Tags:         domain.ReferenceNames(r.Tags),
		CreatedTime:  r.CreatedTime,
		ModifiedTime: r.ModifiedTime,
	}
}

type rawLead struct {
	ID           string             `json:"id"`
	FullName     string             `json:"Full_Name"`
	FirstName    string             `json:"First_Name"`
	LastName     string             `json:"Last_Name"`
	Company      string             `json:"Company"`
	Owner        domain.Reference   `json:"Owner"`
	Email        string             `json:"Email"`
	Phone        string             `json:"Phone"`
	Mobile       string             `json:"Mobile"`
	LeadStatus   string             `json:"Lead_Status"`
	LeadSource   string             `json:"Lead_Source"`
	Industry     string             `json:"Industry"`
	Tags         []domain.Reference `json:"Tag"`
	CreatedTime  string             `json:"Created_Time"`
	ModifiedTime string             `json:"Modified_Time"`
}

func (r rawLead) normalize() domain.Lead {
	name := r.FullName
	if name == "" {
		name = r.LastName
	}

	return domain.Lead{
		ID:           r.ID,
		Name:         withDefault(name, "Unnamed Lead"),
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Company:      withDefault(r.Company, "No Company"),
		OwnerName:    r.Owner.DisplayName(domain.OwnerUnassigned),
		Email:        withDefault(r.Email, "No Email"),
		Phone:        withDefault(r.Phone, "No Phone"),
		Mobile:       withDefault(r.Mobile, "No Mobile"),
		Status:       withDefault(r.LeadStatus, domain.NameUnknown),
		Source:       withDefault(r.LeadSource, domain.NameUnknown),
		Industry:     withDefault(r.Industry, "Not Specified"),
		Tags:         domain.ReferenceNames(r.Tags),
		CreatedTime:  r.CreatedTime,
		ModifiedTime: r.ModifiedTime,
	}
}

type rawTask struct {
	ID           string           `json:"id"`
	Subject      string           `json:"Subject"`
	Owner        domain.Reference `json:"Owner"`
	Status       string           `json:"Status"`
	Priority     string           `json:"Priority"`
	DueDate      string           `json:"Due_Date"`
	StartDate    string           `json:"Start_Date"`
	WhatID       domain.Reference `json:"What_Id"`
	Description  string           `json:"Description"`
	CreatedTime  string           `json:"Created_Time"`
	ModifiedTime string           `json:"Modified_Time"`
}

func (r rawTask) normalize() domain.Task {
	return domain.Task{
		ID:           r.ID,
		Subject:      withDefault(r.Subject, "Unnamed Task"),
		OwnerName:    r.Owner.DisplayName(domain.OwnerUnassigned),
		Status:       withDefault(r.Status, "Not Started"),
		Priority:     withDefault(r.Priority, "Normal"),
		DueDate:      withDefault(r.DueDate, "Not Set"),
		StartDate:    withDefault(r.StartDate, "Not Set"),
		RelatedTo:    r.WhatID.DisplayName(domain.NameUnknown),
		Description:  withDefault(r.Description, "No Description"),
		CreatedTime:  r.CreatedTime,
		ModifiedTime: r.ModifiedTime,
	}
}

type rawNote struct {
	ID           string           `json:"id"`
	NoteTitle    string           `json:"Note_Title"`
	NoteContent  string           `json:"Note_Content"`
	Owner        domain.Reference `json:"Owner"`
	ParentID     domain.Reference `json:"Parent_Id"`
	CreatedTime  string           `json:"Created_Time"`
	ModifiedTime string           `json:"Modified_Time"`
}

func (r rawNote) normalize() domain.Note {
	parentModule := r.ParentID.Module
	if parentModule == "" {
		parentModule = domain.NameUnknown
	}

	return domain.Note{
		ID:           r.ID,
		Title:        withDefault(r.NoteTitle, "Untitled Note"),
		Content:      withDefault(r.NoteContent, "No Content"),
		OwnerName:    r.Owner.DisplayName(domain.OwnerUnassigned),
		ParentModule: parentModule,
		ParentRecord: r.ParentID.DisplayName(domain.NameUnknown),
		CreatedTime:  r.CreatedTime,
		ModifiedTime: r.ModifiedTime,
	}
}
