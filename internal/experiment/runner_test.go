package experiment

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/routinglab/manet-compare/internal/measure"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.WarnLevel)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := Default()
	cfg.Nodes = 20
	cfg.NodeSpeed = 5
	cfg.PacketsPerSec = 4
	cfg.Duration = 6
	cfg.TrafficStart = 1
	cfg.CSVPath = filepath.Join(dir, "series.csv")
	cfg.SummaryPath = filepath.Join(dir, "summary.csv")
	cfg.TracePath = filepath.Join(dir, "trace.csv")
	return cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestRunnerWritesSeriesAndSummary(t *testing.T) {
	cfg := testConfig(t)
	res, err := NewRunner(cfg).Run()
	require.NoError(t, err)

	require.NotEmpty(t, res.RunID)
	require.Equal(t, int64(6), res.Rows)
	require.Equal(t, 10, res.Flows)
	require.NotNil(t, res.Aggregate)
	require.Equal(t, cfg.Key(), res.Aggregate.SweepKey)
	require.False(t, math.IsNaN(res.Aggregate.DeliveryRatio))
	require.GreaterOrEqual(t, res.Aggregate.DeliveryRatio, 0.0)
	require.LessOrEqual(t, res.Aggregate.DeliveryRatio, 1.0)

	series := readLines(t, cfg.CSVPath)
	require.Len(t, series, 7)
	require.Equal(t, "SimulationSecond,ReceiveRate,PacketsReceived,NumberOfSinks,RoutingProtocol,TransmissionPower", series[0])
	require.True(t, strings.HasPrefix(series[1], "0,"))
	require.True(t, strings.HasPrefix(series[6], "5,"))

	summary := readLines(t, cfg.SummaryPath)
	require.Len(t, summary, 2)
	require.True(t, strings.HasPrefix(summary[1], "20,5,4,"))
}

func TestRunnerValidatesBeforeWriting(t *testing.T) {
	cfg := testConfig(t)
	cfg.Protocol = "ZRP"
	_, err := NewRunner(cfg).Run()
	require.Error(t, err)
	_, statErr := os.Stat(cfg.CSVPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunnerSkipsSummaryWithoutMonitor(t *testing.T) {
	cfg := testConfig(t)
	cfg.FlowMonitor = false
	res, err := NewRunner(cfg).Run()
	require.NoError(t, err)
	require.Nil(t, res.Aggregate)
	require.FileExists(t, cfg.CSVPath)
	_, statErr := os.Stat(cfg.SummaryPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunnerTraceMobility(t *testing.T) {
	cfg := testConfig(t)
	cfg.TraceMobility = true
	_, err := NewRunner(cfg).Run()
	require.NoError(t, err)

	lines := readLines(t, cfg.TracePath)
	require.Len(t, lines, 1+6*cfg.Nodes)
	require.Equal(t, "time,node,x,y,speed", lines[0])
}

type failCollector struct{}

func (failCollector) Collect() ([]measure.FlowRecord, error) {
	return nil, errors.New("monitor detached")
}

func TestReportPhaseSkipsOnCollectFailure(t *testing.T) {
	cfg := testConfig(t)
	r := NewRunner(cfg)
	agg, err := r.reportPhase(failCollector{}, cfg.Key(), cfg.Window())
	require.NoError(t, err)
	require.Nil(t, agg)
	_, statErr := os.Stat(cfg.SummaryPath)
	require.True(t, os.IsNotExist(statErr))
}

type stubCollector []measure.FlowRecord

func (s stubCollector) Collect() ([]measure.FlowRecord, error) { return s, nil }

func TestReportPhaseAppendsExactRow(t *testing.T) {
	cfg := testConfig(t)
	records := stubCollector{
		{FlowID: 1, TxPackets: 10, RxPackets: 7, LostPackets: 2, DelaySum: 3 * time.Second},
		{FlowID: 2, TxPackets: 6, RxPackets: 4, LostPackets: 2, DelaySum: time.Second},
		{FlowID: 3, TxPackets: 4, RxPackets: 2, LostPackets: 3, DelaySum: time.Second},
	}
	agg, err := NewRunner(cfg).reportPhase(records, cfg.Key(), cfg.Window())
	require.NoError(t, err)
	require.NotNil(t, agg)

	lines := readLines(t, cfg.SummaryPath)
	require.Len(t, lines, 2)
	require.Equal(t, "20,5,4,0.65,0.35,0.38461538461538464,1.3312", lines[1])
}
