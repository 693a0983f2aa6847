package main

import "testing"

func TestReadNetworkInfo(t *testing.T) {
	t.Setenv(envNetworkStatus, "Connected")
	t.Setenv(envNetworkType, "wifi")
	t.Setenv(envNetworkIP, "10.0.0.17")
	t.Setenv(envNetworkGateway, "10.0.0.1")
	t.Setenv(envNetworkWifiStatus, "associated")
	t.Setenv(envNetworkWifiSSID, "shed")

	info := readNetworkInfo()
	if info == nil {
		t.Fatal("expected network info")
	}
	if info.Type != "wifi" || info.IP != "10.0.0.17" || info.SSID != "shed" {
		t.Errorf("network info: %+v", info)
	}
}

func TestReadNetworkInfoAbsent(t *testing.T) {
	t.Setenv(envNetworkStatus, "")
	if info := readNetworkInfo(); info != nil {
		t.Errorf("expected nil, got %+v", info)
	}
}

func TestStateString(t *testing.T) {
	if stateString(true) != "ON" || stateString(false) != "OFF" {
		t.Error("state strings")
	}
}

func TestContainsID(t *testing.T) {
	ids := []string{"28-aa ", "28-bb"}
	if containsID(ids, "28-aa") {
		t.Error("matched with trailing space")
	}
	if !containsID(ids, "28-bb") {
		t.Error("missed present id")
	}
	if containsID(nil, "28-bb") {
		t.Error("matched in empty list")
	}
}
