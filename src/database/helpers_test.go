package database

import (
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/fees"
)

func feesFilter(personID, className, from, to string) fees.LedgerFilter {
	return fees.LedgerFilter{
		PersonID:  personID,
		ClassName: className,
		Window:    models.ReportWindow{From: from, To: to},
	}
}
