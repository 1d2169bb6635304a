package ehx

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tsawler/ehx/format"
	"github.com/tsawler/ehx/opening"
)

// writeTestJob writes EHX content to a temp file and returns its path.
func writeTestJob(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.ehx")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

const studPanelJob = `<EHX>
  <Panel>
    <PanelGuid>P1</PanelGuid>
    <Label>05-100</Label>
    <Board>
      <FamilyMemberName>Stud</FamilyMemberName>
      <Label>A</Label>
      <Material><Description>2x4 Stud</Description><ActualLength>92.625</ActualLength></Material>
    </Board>
    <Board>
      <FamilyMemberName>Stud</FamilyMemberName>
      <Label>A</Label>
      <Material><Description>2x4 Stud</Description><ActualLength>92.625</ActualLength></Material>
    </Board>
    <Sheet>
      <Label>S9</Label>
      <TypeOfSheathing>OSB</TypeOfSheathing>
      <PanelGuid>P2</PanelGuid>
    </Sheet>
  </Panel>
</EHX>`

func TestReportEndToEnd(t *testing.T) {
	path := writeTestJob(t, studPanelJob)

	lines, err := Open(path).Report("P1")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	// The two identical studs group; the sheet belongs to another panel
	// and is excluded by the association chain.
	want := []string{"A - Stud - 2x4 Stud - (2)"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Report = %v, want %v", lines, want)
	}
}

func TestPanelMaterialsFiltersForeignGuids(t *testing.T) {
	path := writeTestJob(t, studPanelJob)

	mats, err := Open(path).PanelMaterials("P1")
	if err != nil {
		t.Fatalf("PanelMaterials: %v", err)
	}
	if len(mats) != 2 {
		t.Fatalf("material count = %d, want 2", len(mats))
	}
	for _, m := range mats {
		if m.PanelGuid != "P1" {
			t.Errorf("foreign material kept: %+v", m)
		}
	}
}

func TestOpeningsEndToEnd(t *testing.T) {
	path := writeTestJob(t, `<EHX>
  <Panel>
    <PanelGuid>P1</PanelGuid>
    <Board>
      <FamilyMemberName>Stud</FamilyMemberName>
      <Label>A</Label>
      <Material><Description>2x4 Stud</Description></Material>
    </Board>
    <Board>
      <Label>BSMT-HDR</Label>
      <Material><Description>2x10 SPF</Description></Material>
    </Board>
  </Panel>
</EHX>`)

	openings, err := Open(path).Openings("P1")
	if err != nil {
		t.Fatalf("Openings: %v", err)
	}
	if len(openings) != 1 {
		t.Fatalf("opening count = %d, want 1", len(openings))
	}
	o := openings[0]
	if o.Rule != "legacy-label" {
		t.Errorf("rule = %q, want legacy-label", o.Rule)
	}
	if !o.Resolved || o.AFF != 1.5 || o.Stage != opening.StageLabelDefault {
		t.Errorf("AFF = (%v, %v, %v), want (1.5, label-default, true)", o.AFF, o.Stage, o.Resolved)
	}

	// The opening must not leak into the stock report.
	lines, err := Open(path).Report("P1")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	want := []string{"A - Stud - 2x4 Stud - (1)"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Report = %v, want %v", lines, want)
	}
}

func TestOpeningsOverlapInference(t *testing.T) {
	path := writeTestJob(t, `<EHX>
  <Panel>
    <PanelGuid>P1</PanelGuid>
    <ElevationView>
      <Point><X>0</X><Y>0</Y></Point>
      <Point><X>15</X><Y>80</Y></Point>
    </ElevationView>
    <ElevationView>
      <Point><X>18</X><Y>0</Y></Point>
      <Point><X>40</X><Y>95</Y></Point>
    </ElevationView>
    <SubAssembly>
      <FamilyMemberName>RoughOpening</FamilyMemberName>
      <SubAssemblyName>3050 Window</SubAssemblyName>
      <BottomView>
        <Point><X>10</X><Y>0</Y></Point>
        <Point><X>20</X><Y>0</Y></Point>
      </BottomView>
      <Board><FamilyMemberName>Sill</FamilyMemberName><Label>W1</Label></Board>
    </SubAssembly>
  </Panel>
</EHX>`)

	openings, err := Open(path).Openings("P1")
	if err != nil {
		t.Fatalf("Openings: %v", err)
	}
	if len(openings) != 1 {
		t.Fatalf("opening count = %d, want 1", len(openings))
	}
	o := openings[0]
	if o.Stage != opening.StageOverlap {
		t.Fatalf("stage = %v, want overlap", o.Stage)
	}
	// The 5" overlap against the first view beats the 2" overlap against
	// the higher second view.
	if o.AFF != 80 {
		t.Errorf("AFF = %v, want 80", o.AFF)
	}
}

func TestConfigurationChainImmutable(t *testing.T) {
	path := writeTestJob(t, `<EHX>
  <Panel>
    <PanelGuid>P1</PanelGuid>
    <Board><Label>BSMT-HDR</Label><Material><Description>2x10 SPF</Description></Material></Board>
  </Panel>
</EHX>`)

	base := Open(path)
	custom := base.LabelHeights(map[string]float64{"BSMT-HDR": 40})

	got, err := custom.Openings("P1")
	if err != nil {
		t.Fatalf("Openings: %v", err)
	}
	if got[0].AFF != 40 {
		t.Errorf("custom table AFF = %v, want 40", got[0].AFF)
	}

	// The base chain still carries the stock table.
	stock, err := base.Openings("P1")
	if err != nil {
		t.Fatalf("Openings: %v", err)
	}
	if stock[0].AFF != 1.5 {
		t.Errorf("base chain AFF = %v, want 1.5 (chain mutated in place)", stock[0].AFF)
	}
}

func TestVersionTerminal(t *testing.T) {
	path := writeTestJob(t, `<EHX><EHXVersion>2.0</EHXVersion></EHX>`)
	v, err := Open(path).Version()
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != format.V2 {
		t.Errorf("version = %v, want v2.0", v)
	}
}

func TestUnknownPanelGuid(t *testing.T) {
	path := writeTestJob(t, `<EHX><Panel><PanelGuid>P1</PanelGuid></Panel></EHX>`)
	if _, err := Open(path).Report("nope"); err == nil {
		t.Error("Report of unknown panel should error")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.ehx")).Job(); err == nil {
		t.Error("Job on missing file should error")
	}
}

func TestBeamPocketsTerminal(t *testing.T) {
	path := writeTestJob(t, `<EHX>
  <Panel>
    <PanelGuid>P1</PanelGuid>
    <SubAssembly>
      <FamilyMemberName>BeamPocket</FamilyMemberName>
      <SubAssemblyName>BeamPocket</SubAssemblyName>
      <SubAssemblyGuid>BP1</SubAssemblyGuid>
      <Board>
        <FamilyMemberName>Trimmer</FamilyMemberName>
        <Label>T1</Label>
        <ElevationView>
          <Point><X>40</X><Y>2</Y></Point>
          <Point><X>41.5</X><Y>86</Y></Point>
        </ElevationView>
      </Board>
      <Board>
        <FamilyMemberName>KingStud</FamilyMemberName>
        <Label>K1</Label>
        <ElevationView><Point><X>38.5</X><Y>0</Y></Point></ElevationView>
      </Board>
      <Board>
        <FamilyMemberName>KingStud</FamilyMemberName>
        <Label>K1</Label>
        <ElevationView><Point><X>44</X><Y>0</Y></Point></ElevationView>
      </Board>
    </SubAssembly>
  </Panel>
</EHX>`)

	pockets, err := Open(path).BeamPockets("P1")
	if err != nil {
		t.Fatalf("BeamPockets: %v", err)
	}
	if len(pockets) != 1 {
		t.Fatalf("pocket count = %d, want 1", len(pockets))
	}
	bp := pockets[0]
	if bp.PanelGuid != "P1" {
		t.Errorf("panel guid = %q, want P1", bp.PanelGuid)
	}
	if bp.OpeningWidth == nil || *bp.OpeningWidth != 5.5 {
		t.Errorf("OpeningWidth = %v, want 5.5", bp.OpeningWidth)
	}
	if bp.Labels["T1"] != 1 || bp.Labels["K1"] != 2 {
		t.Errorf("labels = %v", bp.Labels)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %v, want 42", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, os.ErrNotExist)
}
