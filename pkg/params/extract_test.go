package params

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcdgen/pkg/domain"
)

const sampleXML = `<?xml version="1.0"?>
<Parameters>
  <Configuration>
    <Axes>
      <Axis Index="0">
        <P n="ServoLoopGainKp">120.5</P>
        <P n="FeedforwardMass">3.2</P>
        <P n="FaultMask">255</P>
        <P n="ServoLoopGainKi">18</P>
      </Axis>
      <Axis Index="1">
        <P n="FaultMask">255</P>
        <P n="FeedforwardFriction">0.02</P>
      </Axis>
    </Axes>
  </Configuration>
</Parameters>`

func TestExtractServoLoop(t *testing.T) {
	got, err := ExtractServoLoop(sampleXML)
	require.NoError(t, err)

	// Axis 1 has no ServoLoop parameters, so it is absent entirely.
	assert.Equal(t, domain.AxisParameters{
		"0": {
			{Name: "ServoLoopGainKp", Value: "120.5"},
			{Name: "ServoLoopGainKi", Value: "18"},
		},
	}, got)
}

func TestExtractFeedforward(t *testing.T) {
	got, err := ExtractFeedforward(sampleXML)
	require.NoError(t, err)

	assert.Equal(t, domain.AxisParameters{
		"0": {{Name: "FeedforwardMass", Value: "3.2"}},
		"1": {{Name: "FeedforwardFriction", Value: "0.02"}},
	}, got)
}

func TestExtract_PreservesDocumentOrder(t *testing.T) {
	xml := `<Root><Axes><Axis Index="0">
		<P n="ServoLoopC">3</P>
		<P n="ServoLoopA">1</P>
		<P n="ServoLoopB">2</P>
	</Axis></Axes></Root>`

	got, err := Extract(strings.NewReader(xml), PrefixServoLoop)
	require.NoError(t, err)

	names := make([]string, 0, len(got["0"]))
	for _, p := range got["0"] {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ServoLoopC", "ServoLoopA", "ServoLoopB"}, names)
}

func TestExtract_NoMatches(t *testing.T) {
	xml := `<Root><Axes><Axis Index="0"><P n="FaultMask">1</P></Axis></Axes></Root>`
	got, err := Extract(strings.NewReader(xml), PrefixServoLoop)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtract_AxisOutsideAxesIgnored(t *testing.T) {
	xml := `<Root><Axis Index="9"><P n="ServoLoopGain">5</P></Axis></Root>`
	got, err := Extract(strings.NewReader(xml), PrefixServoLoop)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtract_MalformedXML(t *testing.T) {
	_, err := Extract(strings.NewReader("<Axes><Axis"), PrefixServoLoop)
	assert.Error(t, err)
}
