package image

import "testing"

func TestDefaultRegistryCatalog(t *testing.T) {
	r := NewDefaultRegistry(Endpoints{})
	list := r.List()

	wantOrder := []string{
		ProviderDalle3,
		ProviderStableDiffusion,
		ProviderBaiduWenxin,
		ProviderAliTongyi,
		ProviderTencentHunyuan,
		ProviderZhipuCogview,
		ProviderMinimax,
		ProviderReplicateSDXL,
		ProviderHuggingFace,
		ProviderYituWonder,
	}
	if len(list) != len(wantOrder) {
		t.Fatalf("catalog size = %d, want %d", len(list), len(wantOrder))
	}
	for i, id := range wantOrder {
		if list[i].ID != id {
			t.Fatalf("catalog[%d] = %q, want %q", i, list[i].ID, id)
		}
		desc, gen, ok := r.Lookup(id)
		if !ok || gen == nil {
			t.Fatalf("lookup %q failed", id)
		}
		if len(desc.Requires) == 0 {
			t.Fatalf("%q publishes no required credentials", id)
		}
	}
}

func TestRegistryCredentialRequirements(t *testing.T) {
	r := NewDefaultRegistry(Endpoints{})

	baidu, _, _ := r.Lookup(ProviderBaiduWenxin)
	if !containsField(baidu.Requires, "secret_key") {
		t.Fatalf("baidu requires = %v, want secret_key", baidu.Requires)
	}
	hunyuan, _, _ := r.Lookup(ProviderTencentHunyuan)
	if !containsField(hunyuan.Requires, "secret_id") {
		t.Fatalf("hunyuan requires = %v, want secret_id", hunyuan.Requires)
	}
}

func TestRegistryReRegisterReplacesEntry(t *testing.T) {
	r := NewRegistry()
	first := &stubGenerator{}
	second := &stubGenerator{}
	r.Register(Descriptor{ID: "p"}, first)
	r.Register(Descriptor{ID: "p", Name: "replaced"}, second)

	if len(r.List()) != 1 {
		t.Fatalf("catalog size = %d, want 1", len(r.List()))
	}
	desc, gen, _ := r.Lookup("p")
	if desc.Name != "replaced" || gen != Generator(second) {
		t.Fatal("re-registration did not replace the entry")
	}
}

func containsField(fields []string, want string) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}
