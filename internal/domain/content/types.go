package content

type TopicID string

const (
	TopicBuySide             TopicID = "buy-side"
	TopicSellSide            TopicID = "sell-side"
	TopicData                TopicID = "data"
	TopicThirdParties        TopicID = "third-parties"
	TopicAdServingRTB        TopicID = "ad-serving-rtb"
	TopicMeasurementCurrency TopicID = "measurement-currency"
)

// TopicIDs lists every topic in navigation order.
var TopicIDs = []TopicID{
	TopicBuySide,
	TopicSellSide,
	TopicData,
	TopicThirdParties,
	TopicAdServingRTB,
	TopicMeasurementCurrency,
}

type ExampleID string

const (
	ExampleInstagram   ExampleID = "instagram"
	ExampleYouTube     ExampleID = "youtube"
	ExampleWebDisplay  ExampleID = "web-display"
	ExampleSearch      ExampleID = "search"
	ExampleVideoPlayer ExampleID = "video-player"
)

var ExampleIDs = []ExampleID{
	ExampleInstagram,
	ExampleYouTube,
	ExampleWebDisplay,
	ExampleSearch,
	ExampleVideoPlayer,
}

// DefaultExampleID is shown on the home page when no valid example is selected.
const DefaultExampleID = ExampleInstagram

type GlossaryID string

const (
	GlossaryYield         GlossaryID = "yield"
	GlossaryInventory     GlossaryID = "inventory"
	GlossaryDSP           GlossaryID = "dsp"
	GlossarySSP           GlossaryID = "ssp"
	GlossaryRTB           GlossaryID = "rtb"
	GlossaryDataLake      GlossaryID = "data-lake"
	GlossaryIdentityGraph GlossaryID = "identity-graph"
	GlossaryAttribution   GlossaryID = "attribution"
	GlossaryCleanRoom     GlossaryID = "clean-room"
	GlossaryCurrency      GlossaryID = "currency"
	GlossaryUpfronts      GlossaryID = "upfronts"
	GlossaryPixel         GlossaryID = "pixel"
	GlossaryVAST          GlossaryID = "vast"
)

var GlossaryIDs = []GlossaryID{
	GlossaryYield,
	GlossaryInventory,
	GlossaryDSP,
	GlossarySSP,
	GlossaryRTB,
	GlossaryDataLake,
	GlossaryIdentityGraph,
	GlossaryAttribution,
	GlossaryCleanRoom,
	GlossaryCurrency,
	GlossaryUpfronts,
	GlossaryPixel,
	GlossaryVAST,
}

type Category string

const (
	CategoryMarketplace Category = "Marketplace"
	CategoryData        Category = "Data"
	CategoryMeasurement Category = "Measurement"
)

type AdFormat string

const (
	FormatBanner AdFormat = "banner"
	FormatNative AdFormat = "native"
	FormatSearch AdFormat = "search"
	FormatVideo  AdFormat = "video"
	FormatAudio  AdFormat = "audio"
)

func ParseTopicID(s string) (TopicID, bool) {
	for _, id := range TopicIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

func ParseExampleID(s string) (ExampleID, bool) {
	for _, id := range ExampleIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

func ParseGlossaryID(s string) (GlossaryID, bool) {
	for _, id := range GlossaryIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

func (c Category) Valid() bool {
	switch c {
	case CategoryMarketplace, CategoryData, CategoryMeasurement:
		return true
	}
	return false
}

func (f AdFormat) Valid() bool {
	switch f {
	case FormatBanner, FormatNative, FormatSearch, FormatVideo, FormatAudio:
		return true
	}
	return false
}

// Topic fields Overview, Technical and DeepDive hold trusted markup fragments.
// Label, ShortDescription and Companies are plain text.
type Topic struct {
	ID               TopicID  `yaml:"id"`
	Label            string   `yaml:"label"`
	ShortDescription string   `yaml:"short_description"`
	Overview         []string `yaml:"overview"`
	Technical        []string `yaml:"technical"`
	Companies        []string `yaml:"companies"`
	DeepDive         []string `yaml:"deep_dive"`
}

type Example struct {
	ID            ExampleID `yaml:"id"`
	Label         string    `yaml:"label"`
	Surface       string    `yaml:"surface"`
	Story         []string  `yaml:"story"`
	TechnicalFlow []string  `yaml:"technical_flow"`
}

type GlossaryEntry struct {
	ID              GlossaryID   `yaml:"id"`
	Term            string       `yaml:"term"`
	Category        Category     `yaml:"category"`
	ShortDefinition string       `yaml:"short_definition"`
	Definition      []string     `yaml:"definition"`
	Related         []GlossaryID `yaml:"related"`
}

// FakeAdAudit is a mock ad plus a made-up explanation of why it was served.
type FakeAdAudit struct {
	Key           string   `yaml:"key"`
	Format        AdFormat `yaml:"format"`
	Advertiser    string   `yaml:"advertiser"`
	Headline      string   `yaml:"headline"`
	Body          string   `yaml:"body"`
	CTA           string   `yaml:"cta"`
	Price         string   `yaml:"price"`
	DSP           string   `yaml:"dsp"`
	SSP           string   `yaml:"ssp"`
	Signals       []string `yaml:"signals"`
	Explanation   string   `yaml:"explanation"`
	AuctionResult string   `yaml:"auction_result"`
	DealType      string   `yaml:"deal_type"`
}
