package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MadinaDev2107/Group-Manager/internal/utils"
	"github.com/MadinaDev2107/Group-Manager/internal/viewstate"
)

var ErrArchiveDisabled = errors.New("roster archiving is disabled: MINIO_ENDPOINT is not set")

// Archiver stores an exported PDF and returns where it lives.
type Archiver interface {
	UploadPDF(ctx context.Context, folder string, data []byte, name string) (string, error)
}

type Exporter struct {
	publicURL string
	archiver  Archiver
	now       func() time.Time
}

// NewExporter builds the roster exporter; a nil archiver disables archiving.
func NewExporter(publicURL string, archiver Archiver) *Exporter {
	return &Exporter{publicURL: publicURL, archiver: archiver, now: time.Now}
}

// RosterPDF renders the students currently shown in v.
func (e *Exporter) RosterPDF(v viewstate.View) ([]byte, error) {
	groupNames := make(map[int64]string, len(v.Groups))
	for _, g := range v.Groups {
		if g.ID != nil {
			groupNames[*g.ID] = g.Name
		}
	}

	rows := make([]utils.RosterRow, len(v.Students))
	for i, st := range v.Students {
		group := ""
		if st.GroupID != nil {
			group = groupNames[*st.GroupID]
			if group == "" {
				group = strconv.FormatInt(*st.GroupID, 10)
			}
		}
		rows[i] = utils.RosterRow{
			No:       i + 1,
			Fullname: st.Fullname,
			Age:      st.Age,
			Active:   st.Status,
			Group:    group,
		}
	}

	var qr []byte
	if e.publicURL != "" {
		png, err := utils.GenerateQRCodePNG(e.publicURL, 0)
		if err != nil {
			return nil, err
		}
		qr = png
	}

	return utils.GenerateRosterPDF(utils.RosterPDFData{
		Title:       "Student roster",
		GeneratedAt: e.now(),
		Rows:        rows,
		QRCodePNG:   qr,
		PublicURL:   e.publicURL,
	})
}

// Archive uploads the roster PDF and returns its URL.
func (e *Exporter) Archive(ctx context.Context, v viewstate.View) (string, error) {
	if e.archiver == nil {
		return "", ErrArchiveDisabled
	}

	pdf, err := e.RosterPDF(v)
	if err != nil {
		return "", err
	}

	url, err := e.archiver.UploadPDF(ctx, "rosters", pdf, "roster "+e.now().Format("20060102-150405"))
	if err != nil {
		return "", fmt.Errorf("archive roster: %w", err)
	}
	return url, nil
}
