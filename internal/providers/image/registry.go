package image

import (
	"net/http"
	"time"
)

// Provider identifiers. These are the values accepted on the wire, so they
// stay stable even when a vendor renames a product.
const (
	ProviderDalle3          = "dalle3"
	ProviderStableDiffusion = "stable_diffusion"
	ProviderBaiduWenxin     = "baidu_wenxin"
	ProviderAliTongyi       = "ali_tongyi"
	ProviderTencentHunyuan  = "tencent_hunyuan"
	ProviderZhipuCogview    = "zhipu_cogview"
	ProviderMinimax         = "minimax"
	ProviderReplicateSDXL   = "replicate_sdxl"
	ProviderHuggingFace     = "huggingface"
	ProviderYituWonder      = "yitu_wonder"
)

// Descriptor is the catalog entry published for a provider. Requires lists
// the credential fields the dispatcher validates before any network call.
type Descriptor struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Vendor        string   `json:"vendor"`
	Free          bool     `json:"free"`
	Requires      []string `json:"requires"`
	MaxResolution string   `json:"max_resolution"`
}

type entry struct {
	desc Descriptor
	gen  Generator
}

// Registry maps provider identifiers to their generators. Listing order is
// registration order so the catalog endpoint stays deterministic.
type Registry struct {
	order   []string
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

func (r *Registry) Register(desc Descriptor, gen Generator) {
	if _, exists := r.entries[desc.ID]; !exists {
		r.order = append(r.order, desc.ID)
	}
	r.entries[desc.ID] = entry{desc: desc, gen: gen}
}

// List returns the descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].desc)
	}
	return out
}

// Lookup returns the descriptor and generator for an identifier.
func (r *Registry) Lookup(id string) (Descriptor, Generator, bool) {
	e, ok := r.entries[id]
	return e.desc, e.gen, ok
}

// Endpoints carries the per-vendor base URLs. Tests point these at local
// stub servers.
type Endpoints struct {
	OpenAI      string
	Stability   string
	Baidu       string
	Tongyi      string
	Hunyuan     string
	Zhipu       string
	Minimax     string
	Replicate   string
	HuggingFace string
	Yitu        string
}

// NewDefaultRegistry wires every supported provider. Each generator gets its
// own client so one vendor's timeout tuning never bleeds into another;
// Hugging Face hosted inference runs cold models, hence the longer deadline.
func NewDefaultRegistry(eps Endpoints) *Registry {
	std := &http.Client{Timeout: 60 * time.Second}
	slow := &http.Client{Timeout: 120 * time.Second}

	r := NewRegistry()
	r.Register(Descriptor{
		ID: ProviderDalle3, Name: "DALL-E 3", Vendor: "OpenAI",
		Requires: []string{"api_key"}, MaxResolution: "1792x1024",
	}, NewDalleGenerator(eps.OpenAI, std))
	r.Register(Descriptor{
		ID: ProviderStableDiffusion, Name: "Stable Diffusion XL", Vendor: "Stability AI",
		Requires: []string{"api_key"}, MaxResolution: "1024x1024",
	}, NewStabilityGenerator(eps.Stability, std))
	r.Register(Descriptor{
		ID: ProviderBaiduWenxin, Name: "文心一格", Vendor: "Baidu",
		Requires: []string{"api_key", "secret_key"}, MaxResolution: "1024x1024",
	}, NewBaiduGenerator(eps.Baidu, std))
	r.Register(Descriptor{
		ID: ProviderAliTongyi, Name: "通义万相", Vendor: "Alibaba",
		Requires: []string{"api_key"}, MaxResolution: "1024x1024",
	}, NewTongyiGenerator(eps.Tongyi, std))
	r.Register(Descriptor{
		ID: ProviderTencentHunyuan, Name: "混元生图", Vendor: "Tencent",
		Requires: []string{"secret_id", "secret_key"}, MaxResolution: "1024x1024",
	}, NewHunyuanGenerator(eps.Hunyuan, std))
	r.Register(Descriptor{
		ID: ProviderZhipuCogview, Name: "CogView-3", Vendor: "Zhipu",
		Requires: []string{"api_key"}, MaxResolution: "1024x1024",
	}, NewZhipuGenerator(eps.Zhipu, std))
	r.Register(Descriptor{
		ID: ProviderMinimax, Name: "MiniMax 图像", Vendor: "MiniMax",
		Requires: []string{"api_key"}, MaxResolution: "1024x1024",
	}, NewMinimaxGenerator(eps.Minimax, std))
	r.Register(Descriptor{
		ID: ProviderReplicateSDXL, Name: "SDXL on Replicate", Vendor: "Replicate",
		Requires: []string{"api_key"}, MaxResolution: "1024x1024",
	}, NewReplicateGenerator(eps.Replicate, std))
	r.Register(Descriptor{
		ID: ProviderHuggingFace, Name: "Hosted Inference SDXL", Vendor: "Hugging Face", Free: true,
		Requires: []string{"api_key"}, MaxResolution: "1024x1024",
	}, NewHFGenerator(eps.HuggingFace, slow))
	r.Register(Descriptor{
		ID: ProviderYituWonder, Name: "依图造画", Vendor: "Yitu",
		Requires: []string{"api_key"}, MaxResolution: "1024x1024",
	}, NewGenericGenerator(ProviderYituWonder, eps.Yitu, "/v1/images", "wonder-v1", std))
	return r
}
