package sapgui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAll(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	ids, err := s.FindAll("wnd[0]")
	require.NoError(t, err)

	want := []model.NodeID{
		"wnd[0]",
		"wnd[0]/tbar[0]/okcd",
		"wnd[0]/tbar[0]/btn[3]",
		"wnd[0]/usr",
		"wnd[0]/usr/lblFAVORITES",
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("FindAll mismatch (-want +got):\n%s", diff)
	}
}

type brokenTreeHost struct {
	platform.HostSession
}

func (brokenTreeHost) ObjectTree(model.NodeID) (string, error) {
	return `{"children": [{"Id": "wnd[0]"`, nil
}

func TestFindAllMalformedPayload(t *testing.T) {
	t.Parallel()

	s := newSession(nil, testOptions())
	s.link.handles = []platform.HostSession{brokenTreeHost{}}
	s.link.state = Connected

	_, err := s.FindAll("wnd[0]")
	var parseErr *model.ParseError
	assert.ErrorAs(t, err, &parseErr)

	_, err = s.FindByText("x", "", false)
	assert.ErrorAs(t, err, &parseErr)
}

func TestFindByText(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	_, err := s.StartTransaction("ME2N")
	require.NoError(t, err)

	tests := []struct {
		name          string
		query         string
		caseSensitive bool
		kind          model.ResolutionKind
		ids           []model.NodeID
	}{
		{"single", "spreadsheet", false, model.Single, []model.NodeID{"wnd[0]/tbar[1]/btn[43]"}},
		{"case folded", "SPREADSHEET", false, model.Single, []model.NodeID{"wnd[0]/tbar[1]/btn[43]"}},
		{"case sensitive miss", "spreadsheet", true, model.NotFound, nil},
		{"case sensitive hit", "Spreadsheet", true, model.Single, []model.NodeID{"wnd[0]/tbar[1]/btn[43]"}},
		{"not found", "xyz", false, model.NotFound, nil},
		{"multiple in tree order", "document", false, model.Multiple, []model.NodeID{
			"wnd[0]",
			"wnd[0]/usr/lblS_EBELN-LOW",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.FindByText(tt.query, model.MainWindow, tt.caseSensitive)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.Kind())
			if diff := cmp.Diff(tt.ids, res.IDs()); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindByTextDefaultsToMainWindow(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	_, err := s.StartTransaction("MM03")
	require.NoError(t, err)

	res, err := s.FindByText("plant", "", false)
	require.NoError(t, err)
	assert.Equal(t, model.NotFound, res.Kind())
	assert.Equal(t, model.NotFoundText, res.String())

	res, err = s.FindByText("plant", "wnd[1]", false)
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("wnd[1]/lblPLANT"), res.ID())
}

func TestFindByTextEmptyQueryMatchesAll(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	ids, err := s.FindAll("wnd[0]")
	require.NoError(t, err)
	res, err := s.FindByText("", "wnd[0]", false)
	require.NoError(t, err)
	assert.Equal(t, ids, res.IDs())
}

func TestNodes(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	nodes, err := s.Nodes("wnd[0]/usr")
	require.NoError(t, err)

	want := []model.FlatNode{
		{ID: "wnd[0]/usr", Type: "usr"},
		{ID: "wnd[0]/usr/lblFAVORITES", Type: "lbl", Text: "Favorites"},
	}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestFindOne(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	_, err := s.StartTransaction("ME2N")
	require.NoError(t, err)

	id, err := s.FindOne("spreadsheet", "", false)
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("wnd[0]/tbar[1]/btn[43]"), id)

	_, err = s.FindOne("document", "", false)
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = s.FindOne("xyz", "", false)
	assert.True(t, IsNotFound(err))
}
