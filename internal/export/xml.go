// Package export renders a user's applications as a downloadable XML document.
package export

import (
	"fmt"
	"time"

	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/beevik/etree"
)

// ContentType is the media type of the rendered document.
const ContentType = "application/xml"

// Filename is suggested to clients in Content-Disposition.
const Filename = "applications.xml"

// ApplicationsXML builds the export document for apps.
func ApplicationsXML(apps []models.Application, exportedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("applications")
	root.CreateAttr("exportedAt", exportedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", fmt.Sprint(len(apps)))

	for _, app := range apps {
		writeApplication(root, app)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render XML: %w", err)
	}
	return out, nil
}

func writeApplication(parent *etree.Element, app models.Application) {
	el := parent.CreateElement("application")
	el.CreateAttr("id", app.ID)
	el.CreateAttr("status", string(app.Status))

	el.CreateElement("companyName").SetText(app.CompanyName)
	el.CreateElement("positionTitle").SetText(app.PositionTitle)
	el.CreateElement("applicationDate").SetText(app.ApplicationDate.String())
	if app.JobURL != nil {
		el.CreateElement("jobUrl").SetText(*app.JobURL)
	}
	if app.Notes != nil {
		el.CreateElement("notes").SetText(*app.Notes)
	}

	interviews := el.CreateElement("interviews")
	for _, iv := range app.Interviews {
		ivEl := interviews.CreateElement("interview")
		ivEl.CreateAttr("id", iv.ID)
		ivEl.CreateAttr("type", string(iv.InterviewType))
		ivEl.CreateElement("date").SetText(iv.InterviewDate.UTC().Format(time.RFC3339))
		if iv.Notes != nil {
			ivEl.CreateElement("notes").SetText(*iv.Notes)
		}
	}
}
