package eventhub

import "testing"

func TestParse(t *testing.T) {
	raw := "Endpoint=sb://contoso.servicebus.windows.net/;SharedAccessKeyName=RootManageSharedAccessKey;SharedAccessKey=abc=;EntityPath=orders"
	cs, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cs.Host != "contoso.servicebus.windows.net" {
		t.Errorf("Host = %q", cs.Host)
	}
	if cs.SharedAccessKeyName != "RootManageSharedAccessKey" {
		t.Errorf("SharedAccessKeyName = %q", cs.SharedAccessKeyName)
	}
	if cs.EntityPath != "orders" {
		t.Errorf("EntityPath = %q", cs.EntityPath)
	}
	if cs.Emulator {
		t.Error("unexpected emulator flag")
	}
	if cs.Broker() != "contoso.servicebus.windows.net:9093" {
		t.Errorf("Broker = %q", cs.Broker())
	}
	if cs.Raw != raw {
		t.Errorf("Raw = %q", cs.Raw)
	}
}

func TestParseEmulator(t *testing.T) {
	cs, err := Parse("Endpoint=sb://localhost;SharedAccessKeyName=k;SharedAccessKey=v;UseDevelopmentEmulator=true")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cs.Emulator {
		t.Fatal("expected emulator flag")
	}
	if cs.Broker() != "localhost:9092" {
		t.Errorf("Broker = %q", cs.Broker())
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"no endpoint": "SharedAccessKeyName=k;SharedAccessKey=v",
		"no key":      "Endpoint=sb://ns.servicebus.windows.net/",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(raw); err == nil {
				t.Fatalf("Parse(%q) succeeded", raw)
			}
		})
	}
}

func TestCheckEntity(t *testing.T) {
	scoped := ConnectionString{EntityPath: "orders"}
	if err := scoped.CheckEntity("orders"); err != nil {
		t.Errorf("same entity: %v", err)
	}
	if err := scoped.CheckEntity("payments"); err == nil {
		t.Error("expected mismatch error")
	}
	if err := (ConnectionString{}).CheckEntity("anything"); err != nil {
		t.Errorf("namespace scoped: %v", err)
	}
}
